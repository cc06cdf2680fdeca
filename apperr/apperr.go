package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a business-rule failure so controllers can map it to
// an HTTP status without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindUnavailable
	KindConflict
	KindInvalidState
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Status maps an error to its HTTP status code. Anything that is not an
// *Error is treated as an unexpected failure.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	if appErr.Kind == KindNotFound {
		return fiber.StatusNotFound
	}
	// Validation, Unavailable, Conflict and InvalidState all surface as 400.
	return fiber.StatusBadRequest
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
