package ops

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testCfg() *config.Config {
	return config.DefaultConfig()
}

// createTestPrompt creates a prompt and returns its id.
func createTestPrompt(t *testing.T, database *sql.DB, name string) string {
	t.Helper()
	out, err := CreatePrompt(context.Background(), database, CreatePromptInput{Name: name})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}
	return out.ID
}

// createTestVersion creates a version under a prompt.
func createTestVersion(t *testing.T, database *sql.DB, promptID, version string) {
	t.Helper()
	_, err := CreateVersion(context.Background(), database, CreateVersionInput{
		PromptID: promptID,
		Version:  version,
	})
	if err != nil {
		t.Fatalf("CreateVersion failed: %v", err)
	}
}

// createTestCommit appends a commit and returns its id.
func createTestCommit(t *testing.T, database *sql.DB, promptID, version, content string, asLatest bool) string {
	t.Helper()
	out, err := CreateCommit(context.Background(), database, testCfg(), CreateCommitInput{
		PromptID: promptID,
		Version:  version,
		Author:   "a@b.com",
		Desp:     "test commit",
		Content:  content,
		AsLatest: asLatest,
	})
	if err != nil {
		t.Fatalf("CreateCommit failed: %v", err)
	}
	return out.CommitID
}

// memCache is an in-process ContentCache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	hits    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (m *memCache) GetContent(_ context.Context, ref string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.entries[ref]
	if ok {
		m.hits++
	}
	return body, ok
}

func (m *memCache) SetContent(_ context.Context, ref, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[ref] = body
	m.sets++
}
