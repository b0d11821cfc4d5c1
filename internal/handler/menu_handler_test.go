package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promo-admin/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		mockReturn     []model.Menu
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			mockReturn:     []model.Menu{{IDMenu: uuid.New(), NamaMenu: "Es Teh"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)

			mockService.On("List", mock.Anything).Return(tt.mockReturn, tt.mockError)

			w := httptest.NewRecorder()
			handler.List(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	id := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		setupMock      func(m *MockMenuService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Found",
			pathID: id.String(),
			setupMock: func(m *MockMenuService) {
				m.On("Get", mock.Anything, id).Return(&model.Menu{IDMenu: id, NamaMenu: "Es Teh"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Not found",
			pathID: id.String(),
			setupMock: func(m *MockMenuService) {
				m.On("Get", mock.Anything, id).Return(nil, model.ErrMenuNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeMenuNotFound,
		},
		{
			name:           "Invalid id",
			pathID:         "12",
			setupMock:      func(m *MockMenuService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidMenuID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/menu/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	id := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockMenuService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success with supplied id",
			body: `{"id_menu":"` + id.String() + `","nama_menu":"Es Teh","harga_menu":5000,"kategori":"minuman","foto_menu":null}`,
			setupMock: func(m *MockMenuService) {
				m.On("Create", mock.Anything, id.String(), map[string]string{
					"nama_menu":  "Es Teh",
					"harga_menu": "5000",
					"kategori":   "minuman",
					"foto_menu":  "",
				}).Return(&model.Menu{IDMenu: id, NamaMenu: "Es Teh"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Validation error",
			body: `{"nama_menu":""}`,
			setupMock: func(m *MockMenuService) {
				m.On("Create", mock.Anything, "", map[string]string{"nama_menu": ""}).
					Return(nil, &model.ValidationError{Fields: map[string]string{"nama_menu": "Kolom nama_menu wajib diisi."}})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name: "Duplicate id",
			body: `{"id_menu":"` + id.String() + `","nama_menu":"Es Teh"}`,
			setupMock: func(m *MockMenuService) {
				m.On("Create", mock.Anything, id.String(), mock.Anything).Return(nil, model.ErrMenuExists)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeMenuExists,
		},
		{
			name:           "Invalid JSON",
			body:           `{"nama_menu":`,
			setupMock:      func(m *MockMenuService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Nested value",
			body:           `{"kategori":{"nama":"minuman"}}`,
			setupMock:      func(m *MockMenuService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_UpdateDelete(t *testing.T) {
	logger := zerolog.Nop()
	id := uuid.New()

	mockService := new(MockMenuService)
	handler := NewMenuHandler(mockService, logger)

	mockService.On("Update", mock.Anything, id, map[string]string{"harga_menu": "6000"}).
		Return(&model.Menu{IDMenu: id, HargaMenu: 6000}, nil)
	mockService.On("Delete", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/menu/"+id.String(), strings.NewReader(`{"harga_menu":"6000"}`))
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	handler.Update(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/menu/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}
