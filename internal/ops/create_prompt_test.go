package ops

import (
	"context"
	"testing"

	"github.com/promptshelf/promptshelf/internal/errors"
)

func TestCreatePrompt(t *testing.T) {
	database := testDB(t)

	out, err := CreatePrompt(context.Background(), database, CreatePromptInput{Name: "greeting"})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}
	if out.ID == "" {
		t.Error("ID should not be empty")
	}

	got, err := GetPrompt(context.Background(), database, GetPromptInput{ID: out.ID})
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if got.Prompt.Name != "greeting" {
		t.Errorf("Name = %q, want %q", got.Prompt.Name, "greeting")
	}
	if len(got.Versions) != 0 {
		t.Errorf("new prompt should have no versions, got %d", len(got.Versions))
	}
}

func TestCreatePrompt_TrimsName(t *testing.T) {
	database := testDB(t)

	out, err := CreatePrompt(context.Background(), database, CreatePromptInput{Name: "  padded  "})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}

	got, err := GetPrompt(context.Background(), database, GetPromptInput{ID: out.ID})
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if got.Prompt.Name != "padded" {
		t.Errorf("Name = %q, want %q", got.Prompt.Name, "padded")
	}
}

func TestCreatePrompt_EmptyName(t *testing.T) {
	database := testDB(t)

	_, err := CreatePrompt(context.Background(), database, CreatePromptInput{Name: "   "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("CreatePrompt should return ErrInvalidRequest, got: %v", err)
	}
}

func TestCreatePrompt_DuplicateNames(t *testing.T) {
	database := testDB(t)

	id1 := createTestPrompt(t, database, "same")
	id2 := createTestPrompt(t, database, "same")

	if id1 == id2 {
		t.Error("duplicate names must still produce distinct ids")
	}
}
