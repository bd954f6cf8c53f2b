package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
)

// LatestInput contains parameters for the Latest operation.
type LatestInput struct {
	PromptID string
}

// LatestOutput contains the result of the Latest operation.
// Item is nil when no commit has been promoted yet.
type LatestOutput struct {
	Item *LatestItem `json:"item"`
}

// LatestItem is the promoted commit and its content.
type LatestItem struct {
	Version  string `json:"version"`
	CommitID string `json:"commit_id"`
	Content  string `json:"content"`
}

// Latest resolves a prompt's promoted content via its latest pointers.
func Latest(ctx context.Context, database *sql.DB, cache ContentCache, input LatestInput) (*LatestOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}

	p, err := db.GetPrompt(ctx, database, promptID)
	if err != nil {
		return nil, err
	}

	if p.LatestVersion == nil || p.LatestCommit == nil {
		return &LatestOutput{Item: nil}, nil
	}

	out, err := GetContent(ctx, database, cache, GetContentInput{
		PromptID: promptID,
		Version:  *p.LatestVersion,
		CommitID: *p.LatestCommit,
	})
	if err != nil {
		return nil, err
	}

	return &LatestOutput{
		Item: &LatestItem{
			Version:  *p.LatestVersion,
			CommitID: out.CommitID,
			Content:  out.Content,
		},
	}, nil
}
