package ops

import (
	"context"
	"database/sql"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// ListPromptsOutput contains the result of the ListPrompts operation.
type ListPromptsOutput struct {
	Items []prompt.Summary `json:"items"`
}

// ListPrompts returns all prompts, most recently updated first. Any version
// or commit mutation under a prompt bumps it to the front.
func ListPrompts(ctx context.Context, database *sql.DB) (*ListPromptsOutput, error) {
	summaries, err := db.ListPrompts(ctx, database)
	if err != nil {
		return nil, err
	}
	return &ListPromptsOutput{Items: summaries}, nil
}
