package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/promptshelf/promptshelf/internal/content"
	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// RollbackInput contains parameters for the Rollback operation.
type RollbackInput struct {
	PromptID string
	Version  string
	CommitID string // historical commit to restore
	Author   string
	Desp     string // defaults to "rollback to <commit_id>"
}

// RollbackOutput contains the result of the Rollback operation.
type RollbackOutput struct {
	CommitID string `json:"commit_id"`
	Seq      int64  `json:"seq"`
}

// Rollback restores a historical commit's content as a brand-new commit on
// the same version, promoted as the new latest. History is never rewritten:
// the target commit stays in place and the log only grows.
func Rollback(ctx context.Context, database *sql.DB, input RollbackInput) (*RollbackOutput, error) {
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
	author := strings.TrimSpace(input.Author)
	if author == "" {
		return nil, errors.NewInvalidRequest("author is required")
	}

	// Scoped lookup: a commit id living in a different version is NOT_FOUND
	// here even though commit ids are globally unique.
	target, err := db.GetCommit(ctx, database, promptID, version, commitID)
	if err != nil {
		return nil, err
	}

	body, err := content.Get(ctx, database, target.ContentRef)
	if err != nil {
		return nil, err
	}

	desp := strings.TrimSpace(input.Desp)
	if desp == "" {
		desp = fmt.Sprintf("rollback to %s", target.ID)
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
		Desp:     desp,
	}

	// Re-appending the payload dedups to the same content_ref, so the new
	// commit's content is byte-identical to the historical one.
	if err := db.AppendCommit(ctx, database, c, body, true); err != nil {
		return nil, err
	}

	return &RollbackOutput{CommitID: c.ID, Seq: c.Seq}, nil
}
