package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// CreateCommitInput contains parameters for the CreateCommit operation.
// Author comes from the authenticated caller, never from the request body.
type CreateCommitInput struct {
	PromptID string
	Version  string
	Author   string
	Desp     string
	Content  string
	AsLatest bool
}

// CreateCommitOutput contains the result of the CreateCommit operation.
type CreateCommitOutput struct {
	CommitID string `json:"commit_id"`
	Seq      int64  `json:"seq"`
}

// CreateCommit appends an immutable content snapshot to a version's log.
// When AsLatest is set the prompt's latest pointers move to the new commit
// atomically with the append.
func CreateCommit(ctx context.Context, database *sql.DB, cfg *config.Config, input CreateCommitInput) (*CreateCommitOutput, error) {
	promptID := strings.TrimSpace(input.PromptID)
	if promptID == "" {
		return nil, errors.NewInvalidRequest("prompt_id is required")
	}
	version := strings.TrimSpace(input.Version)
	if version == "" {
		return nil, errors.NewInvalidRequest("version is required")
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		return nil, errors.NewInvalidRequest("author is required")
	}
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}
	if cfg != nil && cfg.MaxContentBytes > 0 && len(input.Content) > cfg.MaxContentBytes {
		return nil, errors.NewInvalidRequest("content exceeds maximum size")
	}

	// Resolve the prompt first so a bad prompt id reports as the prompt,
	// not as a missing version.
	if _, err := db.GetPrompt(ctx, database, promptID); err != nil {
		return nil, err
	}

	id, err := newCommitID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	c := &prompt.Commit{
		ID:       id,
		PromptID: promptID,
		Version:  version,
		Author:   author,
		Desp:     strings.TrimSpace(input.Desp),
	}

	if err := db.AppendCommit(ctx, database, c, input.Content, input.AsLatest); err != nil {
		return nil, err
	}

	return &CreateCommitOutput{CommitID: c.ID, Seq: c.Seq}, nil
}
