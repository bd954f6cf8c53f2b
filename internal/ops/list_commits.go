package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// ListCommitsInput contains parameters for the ListCommits operation.
type ListCommitsInput struct {
	PromptID string
	Version  string
}

// ListCommitsOutput contains the result of the ListCommits operation.
type ListCommitsOutput struct {
	Commits []prompt.Commit `json:"commits"`
}

// ListCommits returns a version's commit metadata, newest first.
func ListCommits(ctx context.Context, database *sql.DB, input ListCommitsInput) (*ListCommitsOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}
	version := strings.TrimSpace(input.Version)
	if version == "" {
		return nil, errors.NewInvalidRequest("version is required")
	}

	if _, err := db.GetVersion(ctx, database, promptID, version); err != nil {
		return nil, err
	}

	commits, err := db.ListCommits(ctx, database, promptID, version)
	if err != nil {
		return nil, err
	}

	return &ListCommitsOutput{Commits: commits}, nil
}
