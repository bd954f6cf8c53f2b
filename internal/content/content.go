// Package content implements content-addressed, write-once storage for
// commit payloads. A payload's reference is the hex SHA-256 of its bytes, so
// identical content always yields the same reference and storage deduplicates
// for free — rolling back to a commit reproduces its exact content_ref.
package content

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/promptshelf/promptshelf/internal/errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so payloads can be
// written inside the same transaction as the commit row referencing them.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ref computes the content reference for a payload.
func Ref(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// Put stores a payload and returns its reference. Storing the same payload
// twice is a no-op that returns the same reference.
func Put(ctx context.Context, q Querier, body string) (string, error) {
	ref := Ref(body)
	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO contents (ref, body, created_at) VALUES (?, ?, ?)`,
		ref, body, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return ref, nil
}

// Get retrieves a payload by reference.
func Get(ctx context.Context, q Querier, ref string) (string, error) {
	var body string
	err := q.QueryRowContext(ctx, `SELECT body FROM contents WHERE ref = ?`, ref).Scan(&body)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFound("content", ref)
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return body, nil
}
