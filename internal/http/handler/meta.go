package handler

import (
	"github.com/gofiber/fiber/v2"

	"arkiv/internal/label"
	"arkiv/internal/model"
)

// metaResponse carries every dictionary a client form needs, so pickers are
// never hardcoded on the client side.
type metaResponse struct {
	Types         []metaType       `json:"types"`
	Categories    []model.Category `json:"categories"`
	Shelves       []string         `json:"shelves"`
	Layouts       []label.Layout   `json:"layouts"`
	DefaultLayout label.Layout     `json:"default_layout"`
	LabelFormats  []string         `json:"label_formats"`
}

type metaType struct {
	Value string `json:"value"`
	Label string `json:"label"`
	// Containers lists the element types allowed to hold this one.
	Containers []string `json:"containers"`
}

// Meta handles GET /api/meta. The dictionaries are fixed at startup, so the
// response is assembled once.
func Meta(shelves []string) fiber.Handler {
	resp := metaResponse{
		Categories:    model.Categories,
		Shelves:       shelves,
		Layouts:       label.Layouts,
		DefaultLayout: label.DefaultLayout,
		LabelFormats: []string{
			string(label.FormatBrief),
			string(label.FormatFull),
			string(label.FormatCustom),
		},
	}
	for _, t := range model.Types {
		resp.Types = append(resp.Types, metaType{
			Value:      t,
			Label:      model.TypeLabel(t),
			Containers: model.ContainerTypes(t),
		})
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(resp)
	}
}
