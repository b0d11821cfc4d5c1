package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"promo-admin/internal/model"
	"promo-admin/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxMenuBodyBytes limits JSON request bodies on the menu API.
const maxMenuBodyBytes = 1 << 20

// MenuHandler handles the menu JSON API.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	menus, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menus)
}

// GetByID handles GET /api/menu/{id}.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuID(w, r)
	if !ok {
		return
	}

	menu, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// Create handles POST /api/menu. The body may carry id_menu; without it a
// new UUID is assigned.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	rawID := input[model.MenuPrimaryKey]
	delete(input, model.MenuPrimaryKey)

	menu, err := h.service.Create(r.Context(), rawID, input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, menu)
}

// Update handles PUT /api/menu/{id}.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuID(w, r)
	if !ok {
		return
	}

	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	menu, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// Delete handles DELETE /api/menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) menuID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := model.ParseMenuID(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a flat JSON object into string attributes. Numbers keep their
// literal text and null becomes an empty value.
func (h *MenuHandler) decode(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMenuBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON request body", h.logger)
		return nil, false
	}

	input := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			input[key] = ""
		case string:
			input[key] = v
		case json.Number:
			input[key] = v.String()
		case bool:
			input[key] = fmt.Sprint(v)
		default:
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
				fmt.Sprintf("field %s must be a scalar value", key), h.logger)
			return nil, false
		}
	}

	return input, true
}
