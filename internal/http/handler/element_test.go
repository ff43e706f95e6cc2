package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arkiv/internal/model"
	"arkiv/internal/repository"
	"arkiv/internal/service"
	serviceMocks "arkiv/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateElement(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Post("/elements", CreateElement(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.ElementInput{Name: "Contracts 2024", Type: model.TypeBox, Shelf: "A", Rack: "3"}
		created := &model.Element{ID: uuid.New().String(), Name: in.Name, Type: in.Type, Shelf: "A", Rack: "3"}
		mockSvc.On("Create", mock.Anything, in).Return(created, nil).Once()

		body, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/elements", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Element
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, created.ID, result.ID)
		assert.Equal(t, "Contracts 2024", result.Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/elements", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrNameRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/elements", strings.NewReader(`{"type":"box"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NAME_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad container", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidParent).Once()

		req := httptest.NewRequest(http.MethodPost, "/elements", strings.NewReader(`{"name":"box in a document","type":"box","parent_id":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_PARENT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListElements(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/elements", ListElements(mockSvc))

	t.Run("filters forwarded", func(t *testing.T) {
		want := repository.ElementFilter{Name: "pump", Type: model.TypeDocument, Category: "WS"}
		mockSvc.On("List", mock.Anything, want).
			Return([]model.Element{{ID: "1", Name: "Pump passport", Type: model.TypeDocument}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements?name=pump&type=document&category=WS", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result elementList
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty result", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, repository.ElementFilter{}).
			Return([]model.Element{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result elementList
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 0, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		// Internal causes stay out of the response body.
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
		assert.Equal(t, "internal server error", res.Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetElement(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Get("/elements/:id", GetElement(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.Element{ID: id, Name: "Folder", Type: model.TypeFolder}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Element
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found names the id", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "ghost").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/ghost", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Equal(t, "element ghost not found", res.Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateElement(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Put("/elements/:id", UpdateElement(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		in := service.ElementInput{Name: "Renamed", Type: model.TypeBox}
		mockSvc.On("Update", mock.Anything, id, in).
			Return(&model.Element{ID: id, Name: "Renamed", Type: model.TypeBox}, nil).Once()

		body, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPut, "/elements/"+id, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Element
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Renamed", result.Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("cycle rejected", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "a", mock.Anything).Return(nil, service.ErrCycle).Once()

		req := httptest.NewRequest(http.MethodPut, "/elements/a", strings.NewReader(`{"name":"A","type":"box","parent_id":"b"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CYCLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "ghost", mock.Anything).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/elements/ghost", strings.NewReader(`{"name":"X","type":"box"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteElement(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Delete("/elements/:id", DeleteElement(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/elements/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "ghost").Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/elements/ghost", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestElementSubtree(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Get("/elements/:id/subtree", ElementSubtree(mockSvc))

	t.Run("success", func(t *testing.T) {
		tree := &service.TreeNode{
			Element: model.Element{ID: "root", Name: "Box", Type: model.TypeBox},
			Children: []*service.TreeNode{
				{Element: model.Element{ID: "leaf", Name: "Doc", Type: model.TypeDocument, ParentID: "root"}},
			},
		}
		mockSvc.On("Subtree", mock.Anything, "root").Return(tree, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/root/subtree", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.TreeNode
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "root", result.ID)
		assert.Len(t, result.Children, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Subtree", mock.Anything, "ghost").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/ghost/subtree", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestElementLocation(t *testing.T) {
	mockSvc := new(serviceMocks.MockArchiveService)
	app := fiber.New()
	app.Get("/elements/:id/location", ElementLocation(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Locate", mock.Anything, "doc1").
			Return("Box 'Contracts' / Rack 3 / Shelf A", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/doc1/location", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "doc1", result["id"])
		assert.Equal(t, "Box 'Contracts' / Rack 3 / Shelf A", result["location"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Locate", mock.Anything, "ghost").Return("", service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/elements/ghost/location", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
