package http

import (
	"errors"
	"net/http"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Fields maps request fields to the validation rule they broke.
	Fields map[string]string `json:"fields,omitempty"`

	// Candidates lists the matches of an ambiguous reference.
	Candidates []string `json:"candidates,omitempty"`
}

// statusOf maps the domain error taxonomy to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyExists), errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrAmbiguousReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidID),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrLockNotObtained):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Internal errors are logged and
// replaced by a generic message.
func (s *Server) respondError(c echo.Context, err error) error {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error()}

	var ambiguous *errs.AmbiguousReferenceError
	if errors.As(err, &ambiguous) {
		body.Candidates = ambiguous.Candidates
	}

	var invalid *validationError
	if errors.As(err, &invalid) {
		body.Fields = invalid.fields
	}

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		body.Message = http.StatusText(code)
	}

	return c.JSON(code, body)
}
