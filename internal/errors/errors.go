package errors

import "fmt"

// ErrorCode represents a PromptShelf error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"    // 401
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrVersionExists  ErrorCode = "VERSION_EXISTS"  // 409
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ShelfError represents a structured error with code, status, and details.
type ShelfError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ShelfError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ShelfError {
	return &ShelfError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnauthorized creates a 401 error for missing or invalid credentials.
func NewUnauthorized(msg string) *ShelfError {
	return &ShelfError{
		Code:    ErrUnauthorized,
		Status:  401,
		Message: msg,
	}
}

// NewNotFound creates a 404 error identifying the missing entity.
// kind names the entity type ("prompt", "version", "commit", "content").
func NewNotFound(kind, identifier string) *ShelfError {
	return &ShelfError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewVersionExists creates a 409 error for duplicate version names.
func NewVersionExists(promptID, version string) *ShelfError {
	return &ShelfError{
		Code:    ErrVersionExists,
		Status:  409,
		Message: fmt.Sprintf("version %q already exists for prompt %s", version, promptID),
		Details: map[string]any{"prompt_id": promptID, "version": version},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *ShelfError {
	return &ShelfError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ShelfError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ShelfError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ShelfError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ShelfError); ok {
		return sErr.Code == code
	}
	return false
}
