package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// ListVersionsInput contains parameters for the ListVersions operation.
type ListVersionsInput struct {
	PromptID string
}

// ListVersionsOutput contains the result of the ListVersions operation.
type ListVersionsOutput struct {
	Versions []prompt.Version `json:"versions"`
}

// ListVersions returns a prompt's versions, most recently updated first.
func ListVersions(ctx context.Context, database *sql.DB, input ListVersionsInput) (*ListVersionsOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}

	// Distinguish "no versions yet" from "no such prompt".
	if _, err := db.GetPrompt(ctx, database, promptID); err != nil {
		return nil, err
	}

	versions, err := db.ListVersions(ctx, database, promptID)
	if err != nil {
		return nil, err
	}

	return &ListVersionsOutput{Versions: versions}, nil
}
