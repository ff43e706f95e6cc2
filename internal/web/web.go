// Package web holds the embedded front end: the HTML pages a scanned label
// lands on and the static PWA assets (service worker, manifest). Everything
// ships inside the binary so the server has no runtime asset directory.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"arkiv/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/sw.js static/manifest.json
var staticFS embed.FS

// BoxPageDocument is one document card on the box page. Number, Date and
// Category are display strings with fallbacks already applied; CategoryCode
// keeps the raw codes for icon selection.
type BoxPageDocument struct {
	Name         string
	Number       string
	Date         string
	Category     string
	CategoryCode string
}

// BoxPageData feeds the box template. The page serves any element, so Type
// and TypeLabel say what was scanned.
type BoxPageData struct {
	ID         string
	Name       string
	Type       string
	TypeLabel  string
	Location   string
	Categories []string
	Documents  []BoxPageDocument
}

// Pages renders the embedded HTML pages.
type Pages struct {
	tpl *template.Template
}

// NewPages parses the embedded templates once; render calls only execute.
func NewPages() (*Pages, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"lower":    strings.ToLower,
		"typeIcon": typeIcon,
		"docIcon":  docIcon,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{tpl: tpl}, nil
}

// Index writes the landing page.
func (p *Pages) Index(w io.Writer) error {
	return p.tpl.ExecuteTemplate(w, "index.html", nil)
}

// Scanner writes the camera page.
func (p *Pages) Scanner(w io.Writer) error {
	return p.tpl.ExecuteTemplate(w, "scanner.html", nil)
}

// Box writes the element page with its document cards.
func (p *Pages) Box(w io.Writer, data BoxPageData) error {
	return p.tpl.ExecuteTemplate(w, "box.html", data)
}

// Error writes the styled error page browsers get instead of a JSON envelope.
func (p *Pages) Error(w io.Writer, code int, message string) error {
	return p.tpl.ExecuteTemplate(w, "error.html", struct {
		Code    int
		Message string
	}{Code: code, Message: message})
}

// ServiceWorker returns the embedded service worker script.
func ServiceWorker() []byte { return mustStatic("static/sw.js") }

// Manifest returns the embedded PWA manifest.
func Manifest() []byte { return mustStatic("static/manifest.json") }

func mustStatic(name string) []byte {
	b, err := staticFS.ReadFile(name)
	if err != nil {
		// Embedded files are checked at build time.
		panic(fmt.Sprintf("embedded asset %s: %v", name, err))
	}
	return b
}

func typeIcon(t string) string {
	switch t {
	case model.TypeBox:
		return "\U0001F4E6"
	case model.TypeFolder:
		return "\U0001F4C1"
	case model.TypeDocument:
		return "\U0001F4C4"
	}
	return "\U0001F5C3"
}

// docIcon picks the card emoji from the first known category code, the way
// the record classes are usually told apart on paper folders.
func docIcon(category string) string {
	for _, code := range model.SplitCategories(category) {
		switch code {
		case "HN":
			return "\U0001F525"
		case "DS":
			return "\U0001F4A7"
		case "WS":
			return "\U0001F6B0"
		case "SD":
			return "\U0001F327"
		case "HM", "CM":
			return "\U0001F4CA"
		}
	}
	return "\U0001F4C4"
}
