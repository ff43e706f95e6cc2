package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arkiv/internal/model"
	"arkiv/internal/service"
	serviceMocks "arkiv/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListRegistry(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegistryService)
	app := fiber.New()
	app.Get("/registry", ListRegistry(mockSvc))

	entries := []model.RegistryEntry{
		{ID: "1", Name: "Incoming act", Type: model.TypeDocument, Status: "awaiting placement"},
		{ID: "2", Name: "Meter passport", Type: model.TypeDocument, Status: "awaiting placement"},
	}
	mockSvc.On("List", mock.Anything).Return(entries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/registry", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result registryList
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.Total)
	mockSvc.AssertExpectations(t)
}

func TestAddRegistryEntry(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegistryService)
	app := fiber.New()
	app.Post("/registry", AddRegistryEntry(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.RegistryInput{Name: "Incoming act", Type: model.TypeDocument, DocNumber: "42"}
		created := &model.RegistryEntry{ID: uuid.New().String(), Name: in.Name, Type: in.Type, DocNumber: "42"}
		mockSvc.On("Add", mock.Anything, in).Return(created, nil).Once()

		body, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/registry", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.RegistryEntry
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, created.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Add", mock.Anything, mock.Anything).Return(nil, service.ErrNameRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/registry", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NAME_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateRegistryEntry(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegistryService)
	app := fiber.New()
	app.Put("/registry/:id", UpdateRegistryEntry(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.RegistryInput{Name: "Corrected act", Type: model.TypeDocument}
		updated := &model.RegistryEntry{ID: "e1", Name: "Corrected act", Type: model.TypeDocument}
		mockSvc.On("Update", mock.Anything, "e1", in).Return(updated, nil).Once()

		body, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPut, "/registry/e1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.RegistryEntry
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Corrected act", result.Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found names the id", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "ghost", mock.Anything).Return(nil, service.ErrEntryNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/registry/ghost", strings.NewReader(`{"name":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Equal(t, "registry entry ghost not found", res.Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestRemoveRegistryEntry(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegistryService)
	app := fiber.New()
	app.Delete("/registry/:id", RemoveRegistryEntry(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Remove", mock.Anything, "e1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/registry/e1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Remove", mock.Anything, "ghost").Return(service.ErrEntryNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/registry/ghost", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestPlaceRegistryEntries(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegistryService)
	app := fiber.New()
	app.Post("/registry/place", PlaceRegistryEntries(mockSvc))

	t.Run("success", func(t *testing.T) {
		placed := []model.Element{
			{ID: "1", Name: "Act", Type: model.TypeDocument, ParentID: "box1"},
			{ID: "2", Name: "Passport", Type: model.TypeDocument, ParentID: "box1"},
		}
		mockSvc.On("Place", mock.Anything, []string{"1", "2"}, "box1").Return(placed, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/registry/place", strings.NewReader(`{"ids":["1","2"],"parent_id":"box1"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result placeResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Placed, 2)
		assert.Equal(t, "box1", result.Placed[0].ParentID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty selection", func(t *testing.T) {
		mockSvc.On("Place", mock.Anything, []string(nil), "").Return(nil, service.ErrNoEntries).Once()

		req := httptest.NewRequest(http.MethodPost, "/registry/place", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_ENTRIES", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing entry fails the batch", func(t *testing.T) {
		mockSvc.On("Place", mock.Anything, []string{"1", "ghost"}, "").
			Return(nil, fmt.Errorf("%w: %s", service.ErrEntryNotFound, "ghost")).Once()

		req := httptest.NewRequest(http.MethodPost, "/registry/place", strings.NewReader(`{"ids":["1","ghost"]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Contains(t, res.Error.Message, "ghost")
		mockSvc.AssertExpectations(t)
	})
}
