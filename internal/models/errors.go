// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in the response envelope.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeInvalidBody     = "INVALID_BODY"
	CodeNotFound        = "NOT_FOUND"
	CodeUnsupportedType = "UNSUPPORTED_TYPE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeStorageError    = "STORAGE_ERROR"
	CodeDatabaseError   = "DATABASE_ERROR"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
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

// Predefined error constructors
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewInvalidParamsError(message string) *AppError {
	return &AppError{Code: CodeInvalidParams, Message: message}
}

func NewInvalidBodyError(message string, details map[string]any) *AppError {
	return &AppError{Code: CodeInvalidBody, Message: message, Details: details}
}

func NewNotFoundError(resource string, key any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

func NewUnsupportedTypeError(contentType string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedType,
		Message: fmt.Sprintf("Unsupported content type %q", contentType),
	}
}

func NewFileTooLargeError(maxBytes int64) *AppError {
	return &AppError{
		Code:    CodeFileTooLarge,
		Message: "File exceeds the maximum upload size",
		Details: map[string]any{"maxBytes": maxBytes},
	}
}

func NewRateLimitedError(retryAfterMs int64) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: "Too many requests, slow down",
		Details: map[string]any{"retryAfterMs": retryAfterMs},
	}
}

func NewStorageError(err error) *AppError {
	return &AppError{Code: CodeStorageError, Message: "Storage operation failed", Err: err}
}

func NewDatabaseError(err error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: "Database operation failed", Err: err}
}

// StatusForCode maps an error code to its HTTP status.
func StatusForCode(code string) int {
	switch code {
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeInvalidParams, CodeInvalidBody:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnsupportedType:
		return fiber.StatusUnsupportedMediaType
	case CodeFileTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeStorageError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithData writes a success envelope.
func RespondWithData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{OK: true, Data: data})
}

// RespondWithError writes a failure envelope. The wrapped cause of an
// AppError is never serialized; it is for server-side logging only.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	body := &ErrorBody{Code: CodeDatabaseError, Message: "Internal server error"}
	if appErr, ok := err.(*AppError); ok {
		body = &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}
	return c.Status(status).JSON(Envelope{OK: false, Error: body})
}
