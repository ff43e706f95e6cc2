package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/service"
)

// GenerateLabels handles POST /api/labels. The reply is the PDF sheet itself;
// with ?archive=1 the sheet goes to object storage instead and the reply
// carries the object key and a presigned download URL. An empty body labels
// every box with the default layout.
func GenerateLabels(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.LabelRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
			}
		}

		if c.QueryBool("archive") {
			obj, err := svc.Archive(c.UserContext(), req)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(obj)
		}

		sheet, err := svc.Generate(c.UserContext(), req)
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename="labels.pdf"`)
		c.Set("X-Label-Boxes", strconv.Itoa(sheet.Boxes))
		c.Set("X-Label-Pages", strconv.Itoa(sheet.Pages))
		c.Type("pdf")
		return c.Send(sheet.PDF)
	}
}
