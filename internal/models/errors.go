// Package models contains the domain documents and error types for the application.
package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeInternal        = "INTERNAL_ERROR"
)

// Response is the standard API envelope. Data is omitted on errors.
type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
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
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewUpstreamError wraps a failure of an external collaborator (document store,
// object store, auth provider) that must surface as a 500.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUpstreamFailure,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard error envelope.
func RespondWithError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	if appErr, ok := err.(*AppError); ok {
		msg = appErr.Message
	}
	return c.Status(StatusFor(err)).JSON(Response{
		Error:   true,
		Message: msg,
	})
}

// Respond writes the standard success envelope.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Error:   false,
		Message: message,
		Data:    data,
	})
}
