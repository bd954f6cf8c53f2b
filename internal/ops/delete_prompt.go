package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
)

// DeletePromptInput contains parameters for the DeletePrompt operation.
type DeletePromptInput struct {
	ID string
}

// DeletePromptOutput contains the result of the DeletePrompt operation.
type DeletePromptOutput struct {
	ID string `json:"id"`
}

// DeletePrompt hard-deletes a prompt with all its versions and commits.
// Content payloads still referenced by other prompts are kept.
func DeletePrompt(ctx context.Context, database *sql.DB, input DeletePromptInput) (*DeletePromptOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := db.DeletePrompt(ctx, database, id); err != nil {
		return nil, err
	}

	return &DeletePromptOutput{ID: id}, nil
}
