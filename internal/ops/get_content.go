package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/content"
	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
)

// GetContentInput contains parameters for the GetContent operation.
type GetContentInput struct {
	PromptID string
	Version  string
	CommitID string
}

// GetContentOutput contains the result of the GetContent operation.
type GetContentOutput struct {
	CommitID   string `json:"commit_id"`
	ContentRef string `json:"content_ref"`
	Content    string `json:"content"`
}

// GetContent retrieves a commit's payload. The commit must belong to the
// named version; ids from other versions are rejected. The cache may be nil.
func GetContent(ctx context.Context, database *sql.DB, cache ContentCache, input GetContentInput) (*GetContentOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}
	version := strings.TrimSpace(input.Version)
	if version == "" {
		return nil, errors.NewInvalidRequest("version is required")
	}
	commitID := strings.TrimSpace(input.CommitID)
	if commitID == "" {
		return nil, errors.NewInvalidRequest("commit_id is required")
	}

	c, err := db.GetCommit(ctx, database, promptID, version, commitID)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if body, ok := cache.GetContent(ctx, c.ContentRef); ok {
			return &GetContentOutput{CommitID: c.ID, ContentRef: c.ContentRef, Content: body}, nil
		}
	}

	body, err := content.Get(ctx, database, c.ContentRef)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.SetContent(ctx, c.ContentRef, body)
	}

	return &GetContentOutput{CommitID: c.ID, ContentRef: c.ContentRef, Content: body}, nil
}
