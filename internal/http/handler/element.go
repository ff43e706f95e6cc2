package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/model"
	"arkiv/internal/repository"
	"arkiv/internal/service"
)

// elementList wraps list responses so the payload can grow paging fields
// without breaking clients.
type elementList struct {
	Items []model.Element `json:"items"`
	Total int             `json:"total"`
}

// CreateElement handles POST /api/elements.
func CreateElement(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ElementInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		el, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(el)
	}
}

// ListElements handles GET /api/elements. Every filter the search panel
// offers maps to a query parameter; absent parameters do not constrain.
func ListElements(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		els, err := svc.List(c.UserContext(), filterFromQuery(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(elementList{Items: els, Total: len(els)})
	}
}

// GetElement handles GET /api/elements/:id.
func GetElement(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		el, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "element "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(el)
	}
}

// UpdateElement handles PUT /api/elements/:id.
func UpdateElement(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var in service.ElementInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		el, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "element "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(el)
	}
}

// DeleteElement handles DELETE /api/elements/:id. Children of the deleted
// element become roots rather than disappearing with it.
func DeleteElement(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "element "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ElementSubtree handles GET /api/elements/:id/subtree.
func ElementSubtree(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		node, err := svc.Subtree(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "element "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(node)
	}
}

// ElementLocation handles GET /api/elements/:id/location. The path walks the
// ancestor chain, so it names the box, rack and shelf an element sits in.
func ElementLocation(svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		location, err := svc.Locate(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "element "+id+" not found")
			}
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"id": id, "location": location})
	}
}

func filterFromQuery(c *fiber.Ctx) repository.ElementFilter {
	return repository.ElementFilter{
		Name:      c.Query("name"),
		Type:      c.Query("type"),
		Shelf:     c.Query("shelf"),
		Rack:      c.Query("rack"),
		DocNumber: c.Query("doc_number"),
		Category:  c.Query("category"),
	}
}
