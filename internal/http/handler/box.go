package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/service"
)

// BoxInfo handles GET /api/box/:id, the payload behind a scanned label. It
// answers for any element ID; for folders and documents the documents array
// still covers the subtree.
func BoxInfo(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		info, err := svc.BoxInfo(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "box "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(info)
	}
}
