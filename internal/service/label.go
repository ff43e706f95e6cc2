package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arkiv/internal/label"
	"arkiv/internal/model"
	"arkiv/internal/repository"
	"arkiv/internal/storage"
)

// LabelOptions is the custom-format part selection as it arrives over the
// wire. Nil fields fall back to enabled.
type LabelOptions struct {
	ShowName     *bool `json:"show_name" yaml:"show_name"`
	ShowLocation *bool `json:"show_location" yaml:"show_location"`
	ShowCategory *bool `json:"show_category" yaml:"show_category"`
	ShowQR       *bool `json:"show_qr" yaml:"show_qr"`
}

// LabelRequest selects boxes and rendering settings for one sheet.
type LabelRequest struct {
	// BoxIDs lists the elements to label. Empty means every box in the
	// archive.
	BoxIDs  []string      `json:"box_ids" yaml:"box_ids"`
	Layout  *label.Layout `json:"layout" yaml:"layout"`
	Format  label.Format  `json:"format" yaml:"format"`
	Options *LabelOptions `json:"options" yaml:"options"`
}

// LabelSheet is a rendered sheet ready to ship as application/pdf.
type LabelSheet struct {
	PDF   []byte
	Boxes int
	Pages int
}

// LabelService renders QR label sheets for archive boxes.
type LabelService interface {
	// Generate renders a label sheet for the requested boxes.
	Generate(ctx context.Context, req LabelRequest) (*LabelSheet, error)

	// Archive renders a sheet and stores it as an object, returning the key
	// and a presigned download URL.
	Archive(ctx context.Context, req LabelRequest) (*StoredObject, error)
}

type labelService struct {
	elements repository.ElementRepository
	store    storage.Storage
	baseURL  string
}

// NewLabelService wires a LabelService. Generation requires a base URL for
// the QR payloads; store may be nil, which disables Archive.
func NewLabelService(elements repository.ElementRepository, store storage.Storage, baseURL string) LabelService {
	return &labelService{elements: elements, store: store, baseURL: baseURL}
}

func (s *labelService) Generate(ctx context.Context, req LabelRequest) (*LabelSheet, error) {
	if s.baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	layout := label.DefaultLayout
	if req.Layout != nil {
		layout = *req.Layout
		if !layout.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrBadLayout, layout)
		}
	}

	format := req.Format
	if format == "" {
		format = label.FormatBrief
	}
	if !label.ValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}

	elements, err := s.selectElements(ctx, req.BoxIDs)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, ErrNoBoxes
	}

	items := make([]label.Item, 0, len(elements))
	for _, el := range elements {
		items = append(items, label.Item{
			Name:       el.Name,
			Location:   el.ShelfRackLabel(),
			Categories: knownCategoryCodes(el.Category),
			URL:        s.baseURL + "/box/" + el.ID,
		})
	}

	var buf bytes.Buffer
	pages, err := label.Render(&buf, items, layout, format, resolveOptions(req.Options))
	if err != nil {
		return nil, fmt.Errorf("render labels: %w", err)
	}
	return &LabelSheet{PDF: buf.Bytes(), Boxes: len(items), Pages: pages}, nil
}

func (s *labelService) Archive(ctx context.Context, req LabelRequest) (*StoredObject, error) {
	if s.store == nil {
		return nil, ErrNoStorage
	}
	sheet, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("labels/labels-%s.pdf", time.Now().UTC().Format("20060102-150405"))
	info, err := s.store.Put(ctx, key, bytes.NewReader(sheet.PDF), storage.PutObjectOptions{
		Size:        int64(len(sheet.PDF)),
		ContentType: "application/pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("store label sheet: %w", err)
	}
	url, err := s.store.PresignGet(ctx, info.Key, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("presign label sheet: %w", err)
	}
	return &StoredObject{Key: info.Key, URL: url}, nil
}

// selectElements resolves the explicit ID list, or falls back to every box.
func (s *labelService) selectElements(ctx context.Context, ids []string) ([]model.Element, error) {
	if len(ids) == 0 {
		return s.elements.List(ctx, repository.ElementFilter{Type: model.TypeBox})
	}
	out := make([]model.Element, 0, len(ids))
	for _, id := range ids {
		el, err := s.elements.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return nil, err
		}
		out = append(out, *el)
	}
	return out, nil
}

// knownCategoryCodes keeps only dictionary codes; labels have no room for
// free-text categories.
func knownCategoryCodes(stored string) []string {
	var codes []string
	for _, code := range model.SplitCategories(stored) {
		if _, ok := model.CategoryDescription(code); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// resolveOptions starts from everything enabled and applies explicit
// overrides.
func resolveOptions(in *LabelOptions) label.Options {
	out := label.DefaultOptions()
	if in == nil {
		return out
	}
	if in.ShowName != nil {
		out.ShowName = *in.ShowName
	}
	if in.ShowLocation != nil {
		out.ShowLocation = *in.ShowLocation
	}
	if in.ShowCategory != nil {
		out.ShowCategory = *in.ShowCategory
	}
	if in.ShowQR != nil {
		out.ShowQR = *in.ShowQR
	}
	return out
}
