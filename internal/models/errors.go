package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in API responses. The relationship/authorization
// codes are part of the service contract and are matched by clients.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_ERROR"
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeDuplicateEdge     = "DUPLICATE_EDGE"
	CodeSelfFollow        = "SELF_FOLLOW"
	CodeSelfBlock         = "SELF_BLOCK"
	CodeSelfLike          = "SELF_LIKE"
	CodeNotAuthor         = "NOT_AUTHOR"
	CodeEmptyText         = "EMPTY_TEXT"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
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
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
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

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewDuplicateIdentityError reports a signup collision on username or email.
func NewDuplicateIdentityError(field string) *AppError {
	return &AppError{
		Code:    CodeDuplicateIdentity,
		Message: fmt.Sprintf("%s is already taken", field),
	}
}

// NewDuplicateEdgeError reports an attempt to create an already-existing
// follow, block, or like edge.
func NewDuplicateEdgeError(edge string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEdge,
		Message: fmt.Sprintf("%s relationship already exists", edge),
	}
}

func NewSelfFollowError() *AppError {
	return &AppError{Code: CodeSelfFollow, Message: "Cannot follow yourself"}
}

func NewSelfBlockError() *AppError {
	return &AppError{Code: CodeSelfBlock, Message: "Cannot block yourself"}
}

func NewSelfLikeError() *AppError {
	return &AppError{Code: CodeSelfLike, Message: "Cannot like your own message"}
}

// NewNotAuthorError reports a mutation attempted by someone other than the
// entity's author.
func NewNotAuthorError() *AppError {
	return &AppError{Code: CodeNotAuthor, Message: "Access unauthorized"}
}

func NewEmptyTextError() *AppError {
	return &AppError{Code: CodeEmptyText, Message: "Message text cannot be empty"}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// StatusForError maps an application error to the HTTP status the API
// boundary should answer with.
func StatusForError(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized, CodeNotAuthor:
		return fiber.StatusForbidden
	case CodeDuplicateIdentity, CodeDuplicateEdge:
		return fiber.StatusConflict
	case CodeValidation, CodeSelfFollow, CodeSelfBlock, CodeSelfLike, CodeEmptyText:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
