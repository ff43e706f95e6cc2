package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/icons"
	"arkiv/internal/model"
	"arkiv/internal/service"
	"arkiv/internal/web"
)

// IndexPage serves the landing page.
func IndexPage(pages *web.Pages) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, pages.Index)
	}
}

// ScannerPage serves the camera scanner page.
func ScannerPage(pages *web.Pages) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, pages.Scanner)
	}
}

// BoxPage serves the human-facing page behind a scanned label. Unknown IDs
// get the styled HTML error page rather than the JSON envelope, since the
// visitor is a browser.
func BoxPage(pages *web.Pages, svc service.ArchiveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		info, err := svc.BoxInfo(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return renderErrorPage(c, pages, fiber.StatusNotFound, "Element "+id+" not found")
			}
			return err
		}

		return renderPage(c, func(w io.Writer) error {
			return pages.Box(w, boxPageData(info))
		})
	}
}

// AppIcon serves a PWA icon from the icon directory, falling back to the
// built-in transparent placeholder until real icons are generated.
func AppIcon(dir string, size int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := os.ReadFile(filepath.Join(dir, icons.FileName(size)))
		if err != nil {
			data = icons.Placeholder()
		}
		c.Type("png")
		return c.Send(data)
	}
}

// ServiceWorkerAsset serves the embedded service worker. no-cache so browsers
// pick up new worker versions promptly.
func ServiceWorkerAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Type("js")
		return c.Send(web.ServiceWorker())
	}
}

// ManifestAsset serves the embedded PWA manifest.
func ManifestAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("json", "utf-8")
		return c.Send(web.Manifest())
	}
}

// renderPage buffers the template output so a mid-render failure returns an
// error response instead of a truncated page.
func renderPage(c *fiber.Ctx, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func renderErrorPage(c *fiber.Ctx, pages *web.Pages, status int, message string) error {
	var buf bytes.Buffer
	if err := pages.Error(&buf, status, message); err != nil {
		return fmt.Errorf("render error page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// boxPageData shapes the service payload for the template, substituting
// display fallbacks for blank fields.
func boxPageData(info *service.BoxInfo) web.BoxPageData {
	data := web.BoxPageData{
		ID:         info.ID,
		Name:       info.Name,
		Type:       info.Type,
		TypeLabel:  model.TypeLabel(info.Type),
		Location:   info.Location,
		Categories: info.CategoryDescriptions,
	}
	for _, d := range info.Documents {
		data.Documents = append(data.Documents, web.BoxPageDocument{
			Name:         d.Name,
			Number:       valueOr(d.Number, "Not specified"),
			Date:         valueOr(d.Date, "Not specified"),
			Category:     valueOr(d.CategoryDescription, "Not specified"),
			CategoryCode: d.Category,
		})
	}
	return data
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
