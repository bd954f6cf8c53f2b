// Package ops implements the core operations of the prompt store. Each
// operation validates its input, talks to the database layer, and returns a
// typed output; transport layers (REST, MCP, CLI) are thin bindings over it.
package ops

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ContentCache caches immutable commit payloads keyed by content reference.
// A hit can never be stale because payloads are write-once. Implementations
// must be safe for concurrent use; a nil cache disables caching.
type ContentCache interface {
	GetContent(ctx context.Context, ref string) (string, bool)
	SetContent(ctx context.Context, ref, body string)
}

// newCommitID generates a new ULID for a commit. ULIDs are globally unique
// and time-ordered, which keeps commit ids sortable across versions.
func newCommitID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
