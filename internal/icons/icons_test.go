package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderIsTransparentPixel(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Placeholder()))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 1, bounds.Dx())
	assert.Equal(t, 1, bounds.Dy())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	writeTestImage(t, src, 64)

	out := filepath.Join(dir, "icons")
	require.NoError(t, Generate(src, out))

	for _, size := range Sizes {
		f, err := os.Open(filepath.Join(out, FileName(size)))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)

		assert.Equal(t, size, img.Bounds().Dx())
		assert.Equal(t, size, img.Bounds().Dy())
	}
}

func TestGenerateMissingSource(t *testing.T) {
	err := Generate(filepath.Join(t.TempDir(), "nope.png"), t.TempDir())
	assert.Error(t, err)
}

func TestGenerateBadSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))

	err := Generate(src, dir)
	assert.ErrorContains(t, err, "decode source icon")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "icon-192.png", FileName(192))
	assert.Equal(t, "icon-512.png", FileName(512))
}

func writeTestImage(t *testing.T, path string, size int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}
