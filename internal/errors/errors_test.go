package errors

import (
	"fmt"
	"testing"
)

func TestShelfError_Error(t *testing.T) {
	err := &ShelfError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "prompt not found",
	}

	expected := "NOT_FOUND: prompt not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("content is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "content is required" {
		t.Errorf("Message = %q, want %q", err.Message, "content is required")
	}
}

func TestNewUnauthorized(t *testing.T) {
	err := NewUnauthorized("missing bearer token")

	if err.Code != ErrUnauthorized {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnauthorized)
	}
	if err.Status != 401 {
		t.Errorf("Status = %d, want 401", err.Status)
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("prompt", "abc-123")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["kind"] != "prompt" {
		t.Errorf("Details[kind] = %v, want %q", err.Details["kind"], "prompt")
	}
	if err.Details["identifier"] != "abc-123" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "abc-123")
	}
}

func TestNewVersionExists(t *testing.T) {
	err := NewVersionExists("abc-123", "v0.0.1")

	if err.Code != ErrVersionExists {
		t.Errorf("Code = %q, want %q", err.Code, ErrVersionExists)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
	if err.Details["version"] != "v0.0.1" {
		t.Errorf("Details[version] = %v, want %q", err.Details["version"], "v0.0.1")
	}
}

func TestNewInternal(t *testing.T) {
	inner := fmt.Errorf("disk full")
	err := NewInternal(inner)

	if err.Code != ErrInternal {
		t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Message != "disk full" {
		t.Errorf("Message = %q, want %q", err.Message, "disk full")
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)

	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewNotFound("commit", "01ABC")

	if !Is(err, ErrNotFound) {
		t.Error("Is(err, ErrNotFound) = false, want true")
	}
	if Is(err, ErrConflict) {
		t.Error("Is(err, ErrConflict) = true, want false")
	}
	if Is(fmt.Errorf("plain error"), ErrNotFound) {
		t.Error("Is(plain error, ErrNotFound) = true, want false")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is(nil, ErrNotFound) = true, want false")
	}
}
