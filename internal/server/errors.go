// Package server provides the HTTP REST API for the Lift generation service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/ingestion"
	"github.com/jonathan/lift/internal/preferences"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates the operation needs an authenticated user
type ErrUnauthorized struct {
	Reason string
}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized: " + e.Reason
}

// ErrPayloadTooLarge indicates the request body exceeded the upload limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		unauthorized  *ErrUnauthorized
		tooLarge      *ErrPayloadTooLarge
		maxBytes      *http.MaxBytesError
		unsupported   *ingestion.UnsupportedFormatError
		emptyDocument *ingestion.EmptyDocumentError
		unreadablePDF *ingestion.PDFError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &emptyDocument):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &unreadablePDF):
		return http.StatusUnprocessableEntity
	case errors.Is(err, preferences.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, completion.ErrUnsupportedType):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
