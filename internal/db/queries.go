package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/promptshelf/promptshelf/internal/content"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/prompt"
)

// InsertPrompt stores a new prompt row.
func InsertPrompt(ctx context.Context, db *sql.DB, p *prompt.Prompt) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO prompts (id, name, latest_version, latest_commit, created_at, updated_at)
		VALUES (?, ?, NULL, NULL, ?, ?)
	`, p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetPrompt retrieves a prompt by id.
func GetPrompt(ctx context.Context, db *sql.DB, id string) (*prompt.Prompt, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, latest_version, latest_commit, created_at, updated_at
		FROM prompts WHERE id = ?
	`, id)

	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("prompt", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return p, nil
}

// ListPrompts returns all prompt summaries, most recently updated first.
func ListPrompts(ctx context.Context, db *sql.DB) ([]prompt.Summary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT p.id, p.name, p.latest_version, p.latest_commit,
			(SELECT COUNT(*) FROM versions v WHERE v.prompt_id = p.id),
			p.created_at, p.updated_at
		FROM prompts p
		ORDER BY p.updated_at DESC, p.rowid DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := []prompt.Summary{}
	for rows.Next() {
		var s prompt.Summary
		var latestVersion, latestCommit sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &latestVersion, &latestCommit,
			&s.Versions, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.LatestVersion = fromNullString(latestVersion)
		s.LatestCommit = fromNullString(latestCommit)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return summaries, nil
}

// DeletePrompt hard-deletes a prompt, cascading to its versions and commits,
// then prunes content payloads no longer referenced by any commit.
func DeletePrompt(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound("prompt", id)
	}

	// Orphaned payloads are unreachable once the last referencing commit is
	// gone; prune them in the same transaction.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM contents
		WHERE ref NOT IN (SELECT DISTINCT content_ref FROM commits)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertVersion creates a version under a prompt and bumps the prompt's
// updated_at in the same transaction. Fails with VERSION_EXISTS if the name
// is taken and NOT_FOUND if the prompt does not exist.
func InsertVersion(ctx context.Context, db *sql.DB, v *prompt.Version) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM prompts WHERE id = ?`, v.PromptID).Scan(&exists)
	if err == sql.ErrNoRows {
		return errors.NewNotFound("prompt", v.PromptID)
	}
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO versions (prompt_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, v.PromptID, v.Name, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewVersionExists(v.PromptID, v.Name)
		}
		return errors.NewInternal(err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE prompts SET updated_at = ? WHERE id = ?`,
		v.UpdatedAt, v.PromptID)
	if err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetVersion retrieves a version by (prompt_id, name).
func GetVersion(ctx context.Context, db *sql.DB, promptID, name string) (*prompt.Version, error) {
	row := db.QueryRowContext(ctx, `
		SELECT prompt_id, name, created_at, updated_at
		FROM versions WHERE prompt_id = ? AND name = ?
	`, promptID, name)

	var v prompt.Version
	err := row.Scan(&v.PromptID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("version", name)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &v, nil
}

// ListVersions returns a prompt's versions, most recently updated first.
func ListVersions(ctx context.Context, db *sql.DB, promptID string) ([]prompt.Version, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT prompt_id, name, created_at, updated_at
		FROM versions WHERE prompt_id = ?
		ORDER BY updated_at DESC, rowid DESC
	`, promptID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	versions := []prompt.Version{}
	for rows.Next() {
		var v prompt.Version
		if err := rows.Scan(&v.PromptID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return versions, nil
}

// AppendCommit appends a commit to a version's log in one transaction:
// payload write, sequence allocation, commit insert, version touch, and —
// when asLatest is set — the prompt's latest pointers. Either everything
// becomes durable or nothing does. Fills c.Seq, c.ContentRef, c.CreatedAt.
func AppendCommit(ctx context.Context, db *sql.DB, c *prompt.Commit, body string, asLatest bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM versions WHERE prompt_id = ? AND name = ?`,
		c.PromptID, c.Version).Scan(&exists)
	if err == sql.ErrNoRows {
		return errors.NewNotFound("version", c.Version)
	}
	if err != nil {
		return errors.NewInternal(err)
	}

	ref, err := content.Put(ctx, tx, body)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	c.ContentRef = ref
	c.CreatedAt = now

	// The write lock is held from BeginTx (txlock=immediate), so max+1 cannot
	// race; UNIQUE(prompt_id, version, seq) backstops it regardless.
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM commits
		WHERE prompt_id = ? AND version = ?
	`, c.PromptID, c.Version).Scan(&c.Seq)
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO commits (id, prompt_id, version, seq, author, desp, content_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.PromptID, c.Version, c.Seq, c.Author, c.Desp, c.ContentRef, c.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE versions SET updated_at = ? WHERE prompt_id = ? AND name = ?
	`, now, c.PromptID, c.Version)
	if err != nil {
		return errors.NewInternal(err)
	}

	if asLatest {
		_, err = tx.ExecContext(ctx, `
			UPDATE prompts SET latest_version = ?, latest_commit = ?, updated_at = ?
			WHERE id = ?
		`, c.Version, c.ID, now, c.PromptID)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE prompts SET updated_at = ? WHERE id = ?`,
			now, c.PromptID)
	}
	if err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListCommits returns a version's commits, newest first (descending seq).
func ListCommits(ctx context.Context, db *sql.DB, promptID, version string) ([]prompt.Commit, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, prompt_id, version, seq, author, desp, content_ref, created_at
		FROM commits WHERE prompt_id = ? AND version = ?
		ORDER BY seq DESC
	`, promptID, version)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	commits := []prompt.Commit{}
	for rows.Next() {
		var c prompt.Commit
		if err := rows.Scan(&c.ID, &c.PromptID, &c.Version, &c.Seq,
			&c.Author, &c.Desp, &c.ContentRef, &c.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		commits = append(commits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return commits, nil
}

// GetCommit retrieves a commit scoped to (prompt_id, version). A commit id
// that exists under a different version is NOT_FOUND here; rollback and
// content reads must not cross version lines.
func GetCommit(ctx context.Context, db *sql.DB, promptID, version, commitID string) (*prompt.Commit, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, prompt_id, version, seq, author, desp, content_ref, created_at
		FROM commits WHERE prompt_id = ? AND version = ? AND id = ?
	`, promptID, version, commitID)

	var c prompt.Commit
	err := row.Scan(&c.ID, &c.PromptID, &c.Version, &c.Seq,
		&c.Author, &c.Desp, &c.ContentRef, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("commit", commitID)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &c, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func scanPrompt(row *sql.Row) (*prompt.Prompt, error) {
	var p prompt.Prompt
	var latestVersion, latestCommit sql.NullString
	err := row.Scan(&p.ID, &p.Name, &latestVersion, &latestCommit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.LatestVersion = fromNullString(latestVersion)
	p.LatestCommit = fromNullString(latestCommit)
	return &p, nil
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
