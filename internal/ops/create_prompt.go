package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// CreatePromptInput contains parameters for the CreatePrompt operation.
type CreatePromptInput struct {
	Name string // display label, duplicates allowed
}

// CreatePromptOutput contains the result of the CreatePrompt operation.
type CreatePromptOutput struct {
	ID string `json:"id"`
}

// CreatePrompt registers a new prompt with an empty version tree.
func CreatePrompt(ctx context.Context, database *sql.DB, input CreatePromptInput) (*CreatePromptOutput, error) {
	name, ok := prompt.ValidateName(input.Name)
	if !ok {
		return nil, errors.NewInvalidRequest("name is required")
	}

	now := time.Now().UnixMilli()
	p := &prompt.Prompt{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.InsertPrompt(ctx, database, p); err != nil {
		return nil, err
	}

	return &CreatePromptOutput{ID: p.ID}, nil
}
