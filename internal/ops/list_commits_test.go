package ops

import (
	"context"
	"testing"

	"github.com/promptshelf/promptshelf/internal/errors"
)

func TestListCommits_NewestFirst(t *testing.T) {
	database := testDB(t)
	promptID := createTestPrompt(t, database, "greeting")
	createTestVersion(t, database, promptID, "v1")

	c1 := createTestCommit(t, database, promptID, "v1", "one", true)
	c2 := createTestCommit(t, database, promptID, "v1", "two", true)
	c3 := createTestCommit(t, database, promptID, "v1", "three", true)

	out, err := ListCommits(context.Background(), database, ListCommitsInput{
		PromptID: promptID,
		Version:  "v1",
	})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	if len(out.Commits) != 3 {
		t.Fatalf("len = %d, want 3", len(out.Commits))
	}
	for i, want := range []string{c3, c2, c1} {
		if out.Commits[i].ID != want {
			t.Errorf("Commits[%d].ID = %q, want %q", i, out.Commits[i].ID, want)
		}
	}
}

func TestListCommits_EmptyVersion(t *testing.T) {
	database := testDB(t)
	promptID := createTestPrompt(t, database, "greeting")
	createTestVersion(t, database, promptID, "v1")

	out, err := ListCommits(context.Background(), database, ListCommitsInput{
		PromptID: promptID,
		Version:  "v1",
	})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	if len(out.Commits) != 0 {
		t.Errorf("len = %d, want 0", len(out.Commits))
	}
}

func TestListCommits_VersionNotFound(t *testing.T) {
	database := testDB(t)
	promptID := createTestPrompt(t, database, "greeting")

	_, err := ListCommits(context.Background(), database, ListCommitsInput{
		PromptID: promptID,
		Version:  "ghost",
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ListCommits should return ErrNotFound, got: %v", err)
	}
}
