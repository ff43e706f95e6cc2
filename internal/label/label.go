// Package label renders printable QR label sheets for archive boxes. Sheets
// are A4 pages cut into a grid of labels, each carrying a text block on the
// left and a scannable QR code on the right.
package label

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Layout is the label grid on an A4 page.
type Layout struct {
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`
}

// DefaultLayout is the grid used when none is requested.
var DefaultLayout = Layout{Cols: 6, Rows: 8}

// Layouts lists the supported grids, smallest cells last.
var Layouts = []Layout{
	{Cols: 2, Rows: 3},
	{Cols: 3, Rows: 4},
	{Cols: 4, Rows: 6},
	{Cols: 5, Rows: 7},
	{Cols: 6, Rows: 8},
	{Cols: 7, Rows: 9},
	{Cols: 8, Rows: 10},
}

// Valid reports whether the layout is one of the supported grids.
func (l Layout) Valid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

// PerPage returns how many labels fit on one page.
func (l Layout) PerPage() int { return l.Cols * l.Rows }

func (l Layout) String() string { return fmt.Sprintf("%dx%d", l.Cols, l.Rows) }

// ParseLayout reads a "COLSxROWS" string such as "6x8".
func ParseLayout(s string) (Layout, error) {
	var l Layout
	if _, err := fmt.Sscanf(s, "%dx%d", &l.Cols, &l.Rows); err != nil {
		return Layout{}, fmt.Errorf("malformed layout %q", s)
	}
	if !l.Valid() {
		return Layout{}, fmt.Errorf("unsupported layout %q", s)
	}
	return l, nil
}

// Format selects which parts of a label render.
type Format string

const (
	// FormatBrief renders name, location and the QR code.
	FormatBrief Format = "brief"
	// FormatFull renders everything brief does plus category codes.
	FormatFull Format = "full"
	// FormatCustom renders exactly what Options enable.
	FormatCustom Format = "custom"
)

// ValidFormat reports whether f is a known format.
func ValidFormat(f Format) bool {
	switch f {
	case FormatBrief, FormatFull, FormatCustom:
		return true
	}
	return false
}

// Options controls the parts rendered by the custom format.
type Options struct {
	ShowName     bool `json:"show_name" yaml:"show_name"`
	ShowLocation bool `json:"show_location" yaml:"show_location"`
	ShowCategory bool `json:"show_category" yaml:"show_category"`
	ShowQR       bool `json:"show_qr" yaml:"show_qr"`
}

// DefaultOptions enables every label part.
func DefaultOptions() Options {
	return Options{ShowName: true, ShowLocation: true, ShowCategory: true, ShowQR: true}
}

// resolve maps a format to the concrete set of parts to render.
func (f Format) resolve(custom Options) Options {
	switch f {
	case FormatFull:
		return DefaultOptions()
	case FormatCustom:
		return custom
	default:
		return Options{ShowName: true, ShowLocation: true, ShowQR: true}
	}
}

// Item is the content of one label cell.
type Item struct {
	Name       string
	Location   string   // rendered short location, e.g. "Sh.A, R.3"
	Categories []string // category codes, joined with "/" on the label
	URL        string   // QR payload
}

// Page geometry in millimeters. Labels keep a slim page margin so more of
// them fit per sheet.
const (
	pageW      = 210.0
	pageH      = 297.0
	pageMargin = 2.0

	cellTopMargin    = 3.0
	cellSideMargin   = 2.0
	cellBottomMargin = 2.0

	textAreaShare = 0.45
	qrAreaShare   = 0.55
	qrMinSize     = 30.0 // reliable phone scanning needs about 3 cm
	qrPixels      = 256
)

// Render writes a PDF label sheet for the items to w and returns how many
// pages it produced.
func Render(w io.Writer, items []Item, layout Layout, format Format, custom Options) (int, error) {
	if !layout.Valid() {
		return 0, fmt.Errorf("unsupported layout %s", layout)
	}
	if !ValidFormat(format) {
		return 0, fmt.Errorf("unsupported format %q", format)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("no labels to render")
	}
	show := format.resolve(custom)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Box labels", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	labelW := (pageW - 2*pageMargin) / float64(layout.Cols)
	labelH := (pageH - 2*pageMargin) / float64(layout.Rows)

	// Font sizes scale with the cell height, clamped to readable bounds.
	labelHPt := labelH * 72 / 25.4
	nameSize := clamp(labelHPt/2.2, 9, 14)
	infoSize := clamp(labelHPt/3.0, 7, 10)
	lineH := labelH / 6

	perPage := layout.PerPage()
	for i, item := range items {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		slot := i % perPage
		cellX := pageMargin + float64(slot%layout.Cols)*labelW
		cellY := pageMargin + float64(slot/layout.Cols)*labelH

		pdf.SetLineWidth(0.2)
		pdf.Rect(cellX, cellY, labelW, labelH, "D")

		textX := cellX + cellSideMargin
		textW := labelW*textAreaShare - 1
		baseline := cellY + cellTopMargin + lineH*0.8

		if show.ShowName && item.Name != "" {
			pdf.SetFont("Helvetica", "B", nameSize)
			pdf.Text(textX, baseline, tr(shorten(pdf, item.Name, textW)))
			baseline += lineH * 1.2
		}
		if show.ShowLocation && item.Location != "" {
			pdf.SetFont("Helvetica", "", infoSize)
			pdf.Text(textX, baseline, tr(item.Location))
			baseline += lineH
		}
		if show.ShowCategory && len(item.Categories) > 0 {
			pdf.SetFont("Helvetica", "", infoSize-1)
			pdf.Text(textX, baseline, tr(strings.Join(item.Categories, "/")))
			baseline += lineH * 0.8
		}

		if show.ShowQR && item.URL != "" {
			if err := drawQR(pdf, i, item.URL, cellX, cellY, labelW, labelH); err != nil {
				return 0, err
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return pdf.PageCount(), nil
}

// drawQR places the QR code in the right part of the cell, vertically
// centered. The code never shrinks below qrMinSize even when that means
// spilling into the text area on dense grids.
func drawQR(pdf *fpdf.Fpdf, seq int, url string, cellX, cellY, labelW, labelH float64) error {
	png, err := qrcode.Encode(url, qrcode.Medium, qrPixels)
	if err != nil {
		return fmt.Errorf("encode qr for %q: %w", url, err)
	}

	qrAreaW := labelW * qrAreaShare
	availH := labelH - cellTopMargin - cellBottomMargin
	size := min(qrAreaW-2*cellSideMargin, availH) * 0.6
	if size < qrMinSize {
		size = qrMinSize
	}
	x := cellX + labelW - size - cellSideMargin
	y := cellY + cellTopMargin + (availH-size)/2

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("qr-%d", seq)
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return pdf.Error()
}

// shorten trims a name to fit the text area width of the current font. Long
// multi-word names collapse to "first...last" before falling back to a plain
// character cut.
func shorten(pdf *fpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	words := strings.Fields(s)
	if len(words) > 2 {
		short := words[0] + "..." + words[len(words)-1]
		if pdf.GetStringWidth(short) <= maxW {
			return short
		}
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		short := string(runes[:n]) + "..."
		if pdf.GetStringWidth(short) <= maxW {
			return short
		}
	}
	return "..."
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
