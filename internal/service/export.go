package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

// ExportFormat selects the spreadsheet flavor.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFile is a rendered export ready to download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders the element table for spreadsheets. The CSV flavor
// drops IDs, prefixes names with their category codes and strips box segments
// from location paths; the Excel flavor keeps every column and styles the
// sheet as a striped table.
type ExportService interface {
	Export(ctx context.Context, format ExportFormat, f repository.ElementFilter) (*ExportFile, error)
}

type exportService struct {
	elements repository.ElementRepository
}

func NewExportService(elements repository.ElementRepository) ExportService {
	return &exportService{elements: elements}
}

// exportRow is one rendered table line. Fields are already display strings.
type exportRow struct {
	ID        string
	Name      string
	Type      string
	ParentID  string
	Shelf     string
	Rack      string
	DocNumber string
	SignDate  string
	Location  string
	Category  string
}

func (s *exportService) Export(ctx context.Context, format ExportFormat, f repository.ElementFilter) (*ExportFile, error) {
	rows, err := s.tableRows(ctx, f)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExportCSV:
		data, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "archive_export.csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case ExportXLSX:
		data, err := renderXLSX(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "archive_export.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadExport, format)
	}
}

// tableRows loads the filtered elements and renders their display columns.
// Location paths resolve through the full element set, so ancestors outside
// the filter still appear in the path.
func (s *exportService) tableRows(ctx context.Context, f repository.ElementFilter) ([]exportRow, error) {
	filtered, err := s.elements.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	all := filtered
	if f != (repository.ElementFilter{}) {
		all, err = s.elements.List(ctx, repository.ElementFilter{})
		if err != nil {
			return nil, fmt.Errorf("list elements: %w", err)
		}
	}

	byID := make(map[string]model.Element, len(all))
	for _, el := range all {
		byID[el.ID] = el
	}
	lookup := func(id string) (*model.Element, error) {
		if el, ok := byID[id]; ok {
			return &el, nil
		}
		return nil, nil
	}

	rows := make([]exportRow, 0, len(filtered))
	for i := range filtered {
		el := filtered[i]
		location, err := locatePath(&el, lookup)
		if err != nil {
			return nil, err
		}
		rows = append(rows, exportRow{
			ID:        el.ID,
			Name:      el.Name,
			Type:      model.TypeLabel(el.Type),
			ParentID:  el.ParentID,
			Shelf:     el.Shelf,
			Rack:      el.Rack,
			DocNumber: el.DocNumber,
			SignDate:  el.SignDate,
			Location:  location,
			Category:  el.Category,
		})
	}
	return rows, nil
}

var csvHeaders = []string{
	"Name", "Type", "Parent ID", "Shelf", "Rack",
	"Document number", "Signing date", "Location", "Category",
}

func renderCSV(rows []exportRow) ([]byte, error) {
	var buf bytes.Buffer
	// BOM keeps spreadsheet apps from guessing a legacy encoding.
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		name := r.Name
		if codes := knownCategoryCodes(r.Category); len(codes) > 0 {
			name = strings.Join(codes, "/") + ": " + name
		}
		record := []string{
			name, r.Type, r.ParentID, r.Shelf, r.Rack,
			r.DocNumber, r.SignDate, stripBoxSegments(r.Location), r.Category,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// stripBoxSegments removes "Box '...'" parts from a location path. The box is
// implied by the row itself, so the exported path keeps only shelves, racks
// and folders.
func stripBoxSegments(location string) string {
	parts := strings.Split(location, " / ")
	kept := parts[:0]
	for _, p := range parts {
		if !strings.HasPrefix(p, "Box ") {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " / ")
}

const exportSheet = "Archive"

var xlsxHeaders = []string{
	"ID", "Name", "Type", "Parent ID", "Shelf", "Rack",
	"Document number", "Signing date", "Location", "Category",
}

func renderXLSX(rows []exportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cells := []any{
			r.ID, r.Name, r.Type, r.ParentID, r.Shelf, r.Rack,
			r.DocNumber, r.SignDate, r.Location, r.Category,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2196F3"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "J1", headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	if len(rows) > 0 {
		bodyStyle, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		})
		if err != nil {
			return nil, fmt.Errorf("body style: %w", err)
		}
		last := fmt.Sprintf("J%d", len(rows)+1)
		if err := f.SetCellStyle(exportSheet, "A2", last, bodyStyle); err != nil {
			return nil, fmt.Errorf("apply body style: %w", err)
		}
	}

	if err := sizeColumns(f, rows); err != nil {
		return nil, err
	}

	stripes := true
	if err := f.AddTable(exportSheet, &excelize.Table{
		Range:          fmt.Sprintf("A1:J%d", len(rows)+1),
		Name:           "ArchiveTable",
		StyleName:      "TableStyleMedium9",
		ShowRowStripes: &stripes,
	}); err != nil {
		return nil, fmt.Errorf("add table: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sizeColumns widens each column to its longest value, capped so location
// paths cannot blow up the sheet.
func sizeColumns(f *excelize.File, rows []exportRow) error {
	widths := make([]int, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		cells := []string{
			r.ID, r.Name, r.Type, r.ParentID, r.Shelf, r.Rack,
			r.DocNumber, r.SignDate, r.Location, r.Category,
		}
		for i, v := range cells {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		width := float64(w + 3)
		if width > 60 {
			width = 60
		}
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
