package handler

import (
	"github.com/gofiber/fiber/v2"

	"arkiv/internal/model"
	"arkiv/internal/service"
)

// ExportSnapshot handles GET /api/sync/export, the full inventory as one
// JSON document. With ?archive=1 the snapshot goes to object storage instead
// and the reply carries the object key and a presigned download URL.
func ExportSnapshot(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.QueryBool("archive") {
			obj, err := svc.Archive(c.UserContext())
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(obj)
		}

		snap, err := svc.Export(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="archive.json"`)
		return c.JSON(snap)
	}
}

// ImportSnapshot handles POST /api/sync/import: a full replace of the archive
// and the registry in one transaction.
func ImportSnapshot(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var snap model.Snapshot
		if err := c.BodyParser(&snap); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SNAPSHOT", "request body must be snapshot JSON")
		}

		if err := svc.Import(c.UserContext(), &snap); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
