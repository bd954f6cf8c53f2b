package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// GetPromptInput contains parameters for the GetPrompt operation.
type GetPromptInput struct {
	ID string
}

// GetPromptOutput contains the result of the GetPrompt operation.
type GetPromptOutput struct {
	Prompt   prompt.Prompt    `json:"prompt"`
	Versions []prompt.Version `json:"versions"`
}

// GetPrompt retrieves a prompt and its version tree.
func GetPrompt(ctx context.Context, database *sql.DB, input GetPromptInput) (*GetPromptOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	p, err := db.GetPrompt(ctx, database, id)
	if err != nil {
		return nil, err
	}

	versions, err := db.ListVersions(ctx, database, id)
	if err != nil {
		return nil, err
	}

	return &GetPromptOutput{Prompt: *p, Versions: versions}, nil
}
