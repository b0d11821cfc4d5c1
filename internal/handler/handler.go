package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"promo-admin/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent, so an encode failure cannot change the response.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Str("code", code).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error onto a JSON error response.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		logger.Debug().Interface("fields", verr.Fields).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   model.ErrCodeValidation,
			Message: "Data yang dikirim tidak valid",
			Fields:  verr.Fields,
		})
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		writeError(w, domainStatus(derr), derr.Code, derr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// domainStatus returns the HTTP status for a domain error.
func domainStatus(err *model.DomainError) int {
	switch err.Code {
	case model.ErrCodePromoNotFound, model.ErrCodeMenuNotFound:
		return http.StatusNotFound
	case model.ErrCodeMenuExists:
		return http.StatusConflict
	case model.ErrCodeInvalidMenuID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
