package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// CreateVersionInput contains parameters for the CreateVersion operation.
type CreateVersionInput struct {
	PromptID string
	Version  string
}

// CreateVersionOutput contains the result of the CreateVersion operation.
type CreateVersionOutput struct {
	PromptID string `json:"prompt_id"`
	Version  string `json:"version"`
}

// CreateVersion creates a named version with an empty commit log under a
// prompt. Version names are unique within a prompt and never change.
func CreateVersion(ctx context.Context, database *sql.DB, input CreateVersionInput) (*CreateVersionOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}
	version, ok := prompt.ValidateVersionName(input.Version)
	if !ok {
		return nil, errors.NewInvalidRequest("version must be a non-empty name without whitespace")
	}

	now := time.Now().UnixMilli()
	v := &prompt.Version{
		PromptID:  promptID,
		Name:      version,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.InsertVersion(ctx, database, v); err != nil {
		return nil, err
	}

	return &CreateVersionOutput{PromptID: promptID, Version: version}, nil
}
