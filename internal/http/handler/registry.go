package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/model"
	"arkiv/internal/service"
)

type registryList struct {
	Items []model.RegistryEntry `json:"items"`
	Total int                   `json:"total"`
}

// placeRequest names the entries to move into the archive. An empty parent
// places the new documents at the root.
type placeRequest struct {
	IDs      []string `json:"ids"`
	ParentID string   `json:"parent_id"`
}

type placeResponse struct {
	Placed []model.Element `json:"placed"`
	Total  int             `json:"total"`
}

// ListRegistry handles GET /api/registry.
func ListRegistry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(registryList{Items: entries, Total: len(entries)})
	}
}

// AddRegistryEntry handles POST /api/registry.
func AddRegistryEntry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegistryInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		entry, err := svc.Add(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// UpdateRegistryEntry handles PUT /api/registry/:id.
func UpdateRegistryEntry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var in service.RegistryInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		entry, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			if errors.Is(err, service.ErrEntryNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "registry entry "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(entry)
	}
}

// RemoveRegistryEntry handles DELETE /api/registry/:id.
func RemoveRegistryEntry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.Remove(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrEntryNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "registry entry "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PlaceRegistryEntries handles POST /api/registry/place. The whole batch is
// placed or none of it; a missing entry fails the request with its ID in the
// message.
func PlaceRegistryEntries(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req placeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		placed, err := svc.Place(c.UserContext(), req.IDs, req.ParentID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(placeResponse{Placed: placed, Total: len(placed)})
	}
}
