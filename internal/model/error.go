package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodePromoNotFound   = "PROMO_NOT_FOUND"
	ErrCodeMenuNotFound    = "MENU_NOT_FOUND"
	ErrCodeInvalidMenuID   = "INVALID_MENU_ID"
	ErrCodeMenuExists      = "MENU_EXISTS"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeUploadTooLarge  = "UPLOAD_TOO_LARGE"
	ErrCodeMalformedUpload = "MALFORMED_UPLOAD"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrPromoNotFound = NewDomainError(ErrCodePromoNotFound, "Promo tidak ditemukan")
	ErrMenuNotFound  = NewDomainError(ErrCodeMenuNotFound, "Menu tidak ditemukan")
	ErrInvalidMenuID = NewDomainError(ErrCodeInvalidMenuID, "id_menu harus berupa UUID")
	ErrMenuExists    = NewDomainError(ErrCodeMenuExists, "id_menu sudah digunakan")
)

// ValidationError carries per-field messages keyed by the form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field unless one is already present.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Empty reports whether no field errors were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Merge copies the field messages of other into e, keeping e's existing messages.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, message := range other.Fields {
		e.Add(field, message)
	}
}
