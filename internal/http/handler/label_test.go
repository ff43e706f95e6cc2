package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arkiv/internal/service"
	serviceMocks "arkiv/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenerateLabels(t *testing.T) {
	mockSvc := new(serviceMocks.MockLabelService)
	app := fiber.New()
	app.Post("/labels", GenerateLabels(mockSvc))

	t.Run("pdf response", func(t *testing.T) {
		sheet := &service.LabelSheet{PDF: []byte("%PDF-1.4 fake"), Boxes: 3, Pages: 1}
		mockSvc.On("Generate", mock.Anything, mock.Anything).Return(sheet, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader(`{"box_ids":["a","b","c"]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "pdf")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "labels.pdf")
		assert.Equal(t, "3", resp.Header.Get("X-Label-Boxes"))
		assert.Equal(t, "1", resp.Header.Get("X-Label-Pages"))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, sheet.PDF, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty body labels everything", func(t *testing.T) {
		sheet := &service.LabelSheet{PDF: []byte("%PDF"), Boxes: 10, Pages: 1}
		mockSvc.On("Generate", mock.Anything, service.LabelRequest{}).Return(sheet, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("archived to object storage", func(t *testing.T) {
		obj := &service.StoredObject{Key: "labels/labels-20250101-120000.pdf", URL: "https://minio/presigned"}
		mockSvc.On("Archive", mock.Anything, mock.Anything).Return(obj, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels?archive=1", strings.NewReader(`{"box_ids":["a"]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.StoredObject
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, obj.Key, result.Key)
		assert.Equal(t, obj.URL, result.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no boxes", func(t *testing.T) {
		mockSvc.On("Generate", mock.Anything, mock.Anything).Return(nil, service.ErrNoBoxes).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader(`{"box_ids":["ghost"]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_BOXES", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("base url missing", func(t *testing.T) {
		mockSvc.On("Generate", mock.Anything, mock.Anything).Return(nil, service.ErrBaseURLRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BASE_URL_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage disabled", func(t *testing.T) {
		mockSvc.On("Archive", mock.Anything, mock.Anything).Return(nil, service.ErrNoStorage).Once()

		req := httptest.NewRequest(http.MethodPost, "/labels?archive=1", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_DISABLED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestExportTable(t *testing.T) {
	mockSvc := new(serviceMocks.MockExportService)
	app := fiber.New()
	app.Get("/export", ExportTable(mockSvc))

	t.Run("csv by default", func(t *testing.T) {
		file := &service.ExportFile{
			Name:        "archive_export.csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        []byte("ID,Name\n1,Box\n"),
		}
		mockSvc.On("Export", mock.Anything, service.ExportCSV, mock.Anything).Return(file, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "archive_export.csv")

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, file.Data, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("xlsx with filter", func(t *testing.T) {
		file := &service.ExportFile{
			Name:        "archive_export.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        []byte("PK fake zip"),
		}
		mockSvc.On("Export", mock.Anything, service.ExportXLSX, mock.Anything).Return(file, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/export?format=xlsx&type=document", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "archive_export.xlsx")
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown format", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, service.ExportFormat("pdf"), mock.Anything).
			Return(nil, service.ErrBadExport).Once()

		req := httptest.NewRequest(http.MethodGet, "/export?format=pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FORMAT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}
