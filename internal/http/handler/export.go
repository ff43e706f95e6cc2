package handler

import (
	"github.com/gofiber/fiber/v2"

	"arkiv/internal/service"
)

// ExportTable handles GET /api/export. The format defaults to CSV; the same
// filter parameters as the element list narrow the rows.
func ExportTable(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := service.ExportFormat(c.Query("format", string(service.ExportCSV)))

		file, err := svc.Export(c.UserContext(), format, filterFromQuery(c))
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
		c.Set(fiber.HeaderContentType, file.ContentType)
		return c.Send(file.Data)
	}
}
