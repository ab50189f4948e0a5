// Package apperrors defines the error taxonomy shared by all services and the
// echo error handler that maps it onto HTTP responses.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Kind classifies an error for callers and for the HTTP mapping.
type Kind int

const (
	// KindValidation is malformed or missing caller input.
	KindValidation Kind = iota
	// KindConflict is a uniqueness violation on create.
	KindConflict
	// KindAuth is bad credentials or an invalid/expired token. Unknown user
	// and wrong password are deliberately indistinguishable.
	KindAuth
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindInternal is a hashing/signing/storage failure unrelated to caller
	// input. Its detail is logged, never returned to the caller.
	KindInternal
)

// Error is a classified service error with a user-safe message. For
// KindInternal the wrapped cause carries the detail for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Conflict returns a KindConflict error
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Auth returns a KindAuth error
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

// NotFound returns a KindNotFound error
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Internal returns a KindInternal error wrapping its cause
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// statusOf maps a Kind to an HTTP status. Credential and sign-up failures are
// bad requests; token failures are rejected with 401 by the auth gateway
// before any service error is produced.
func statusOf(k Kind) int {
	switch k {
	case KindValidation, KindConflict, KindAuth:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler returns an echo error handler that maps classified errors
// to their status, logs internal failures with full context, and hides their
// detail behind a generic message.
func HTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = statusOf(appErr.Kind)
			if appErr.Kind == KindInternal {
				log.WithError(appErr.Err).WithFields(logrus.Fields{
					"method": c.Request().Method,
					"path":   c.Path(),
				}).Error(appErr.Message)
			} else {
				message = appErr.Message
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"message": message})
		}
		if err != nil {
			log.WithError(err).Error("failed to write error response")
		}
	}
}
