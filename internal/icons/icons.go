// Package icons prepares the PWA icon files. Real icons are rendered from a
// source image by the icons CLI command; until that runs the server serves a
// built-in 1x1 transparent placeholder so installs never break on a 404.
package icons

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	_ "image/jpeg"
)

// Sizes lists the square icon sizes the PWA manifest references.
var Sizes = []int{192, 512}

// placeholder is a 1x1 transparent PNG.
var placeholder = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// Placeholder returns the transparent stand-in icon.
func Placeholder() []byte { return placeholder }

// FileName returns the icon file name for a size, e.g. "icon-192.png".
func FileName(size int) string { return fmt.Sprintf("icon-%d.png", size) }

// Generate renders every manifest icon size from the source image into dir.
// The source should be square and at least 512px for a sharp result.
func Generate(srcPath, dir string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source icon: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode source icon: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create icon dir: %w", err)
	}

	for _, size := range Sizes {
		if err := writeResized(src, filepath.Join(dir, FileName(size)), size); err != nil {
			return err
		}
	}
	return nil
}

func writeResized(src image.Image, path string, size int) error {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, dst); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
