package http

import (
	"errors"
	"net/http"

	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
}

// StatusFor maps an error kind onto an HTTP status code.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindInvalidStateTransition:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindDependencyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse classifies err. Internal errors never leak their message.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorResponse{Kind: kindForStatus(httpErr.Code), Message: http.StatusText(httpErr.Code)}
	}

	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		return http.StatusInternalServerError, ErrorResponse{Kind: kind, Message: "internal error"}
	}
	return StatusFor(kind), ErrorResponse{Kind: kind, Message: err.Error()}
}

// ErrorHandler writes ErrorResponse bodies and logs server side failures.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := NewErrorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("write error response")
		}
	}
}

func kindForStatus(status int) errs.Kind {
	switch {
	case status == http.StatusNotFound:
		return errs.KindNotFound
	case status == http.StatusConflict:
		return errs.KindConflict
	case status == http.StatusServiceUnavailable:
		return errs.KindDependencyUnavailable
	case status >= http.StatusInternalServerError:
		return errs.KindInternal
	default:
		return errs.KindValidation
	}
}
