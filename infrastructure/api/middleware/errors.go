package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/helixml/markerrange/application/service"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/infrastructure/api/jsonapi"
)

// APIError carries an explicit HTTP status.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// BadRequest creates a 400 error for a malformed request.
func BadRequest(message string, cause error) *APIError {
	return NewAPIError(http.StatusBadRequest, message, cause)
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the error message.
func (e *APIError) Message() string { return e.message }

// Error implements error.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the cause.
func (e *APIError) Unwrap() error { return e.cause }

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.code
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, render.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrUnsupportedEnvironment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrBackendFailure):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON:API error document. Server-side failures
// are logged; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	WriteErrorWithMeta(w, r, err, nil, logger)
}

// WriteErrorWithMeta writes err like WriteError and adds meta to the error
// object, next to the failing range_id when there is one.
func WriteErrorWithMeta(w http.ResponseWriter, r *http.Request, err error, meta jsonapi.Meta, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.message
		if apiErr.cause != nil {
			detail = fmt.Sprintf("%s: %v", apiErr.message, apiErr.cause)
		}
	}

	e := jsonapi.NewError(status, http.StatusText(status), detail)
	m := jsonapi.Meta{}
	for k, v := range meta {
		m[k] = v
	}
	var rangeErr *service.RangeError
	if errors.As(err, &rangeErr) {
		m["range_id"] = rangeErr.RangeID
	}
	if len(m) > 0 {
		e.Meta = &m
	}
	WriteJSON(w, status, jsonapi.NewErrorResponse(e))
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
