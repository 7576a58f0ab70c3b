package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies domain failures so the HTTP layer can map them to statuses
// without string matching.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindSlotConflict    Kind = "SLOT_CONFLICT"
	KindSlotUnavailable Kind = "SLOT_UNAVAILABLE"
	KindInvalidState    Kind = "INVALID_STATE"
	KindValidation      Kind = "VALIDATION"
	KindUnauthorized    Kind = "UNAUTHORIZED"
)

type AppError struct {
	Kind    Kind
	Message string
	// Field-level violations, only populated for KindValidation.
	Fields []FieldError
	Err    error
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindSlotConflict, KindSlotUnavailable, KindInvalidState, KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func SlotConflict(message string) *AppError {
	return &AppError{Kind: KindSlotConflict, Message: message}
}

func SlotUnavailable(message string) *AppError {
	return &AppError{Kind: KindSlotUnavailable, Message: message}
}

func InvalidState(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func Validation(message string, fields []FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
