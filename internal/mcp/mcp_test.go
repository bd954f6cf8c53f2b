package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/db"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultJSON unmarshals a successful tool result's text payload.
func resultJSON(t *testing.T, result *mcp.CallToolResult, dst any) {
	t.Helper()

	if result.IsError {
		t.Fatalf("tool returned error result: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), dst); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
}

// seedPrompt creates a prompt with one version and one promoted commit.
func seedPrompt(t *testing.T, database *sql.DB, cfg *config.Config, name, version, content string) (promptID, commitID string) {
	t.Helper()
	ctx := context.Background()

	created, err := ops.CreatePrompt(ctx, database, ops.CreatePromptInput{Name: name})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}
	if _, err := ops.CreateVersion(ctx, database, ops.CreateVersionInput{
		PromptID: created.ID,
		Version:  version,
	}); err != nil {
		t.Fatalf("CreateVersion failed: %v", err)
	}
	committed, err := ops.CreateCommit(ctx, database, cfg, ops.CreateCommitInput{
		PromptID: created.ID,
		Version:  version,
		Author:   "mcp-test",
		Desp:     "seed",
		Content:  content,
		AsLatest: true,
	})
	if err != nil {
		t.Fatalf("CreateCommit failed: %v", err)
	}
	return created.ID, committed.CommitID
}

func TestToolRegistry_ReadOnlySurface(t *testing.T) {
	names := AllToolNames()
	if len(names) != 5 {
		t.Fatalf("registered tools = %d, want 5", len(names))
	}
	for _, name := range names {
		switch name {
		case "prompt_list", "prompt_versions", "prompt_commits", "prompt_content", "prompt_latest":
		default:
			t.Errorf("unexpected tool %q", name)
		}
	}
}

func TestHandleList(t *testing.T) {
	database, cfg := testSetup(t)
	promptID, _ := seedPrompt(t, database, cfg, "greeting", "v1", "Hello")
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleList failed: %v", err)
	}

	var out ops.ListPromptsOutput
	resultJSON(t, result, &out)
	if len(out.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(out.Items))
	}
	if out.Items[0].ID != promptID {
		t.Errorf("item id = %q, want %q", out.Items[0].ID, promptID)
	}
}

func TestHandleVersions(t *testing.T) {
	database, cfg := testSetup(t)
	promptID, _ := seedPrompt(t, database, cfg, "greeting", "v1", "Hello")
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleVersions(context.Background(), makeRequest(map[string]any{
		"prompt_id": promptID,
	}))
	if err != nil {
		t.Fatalf("HandleVersions failed: %v", err)
	}

	var out ops.ListVersionsOutput
	resultJSON(t, result, &out)
	if len(out.Versions) != 1 || out.Versions[0].Name != "v1" {
		t.Fatalf("versions = %+v, want single v1", out.Versions)
	}
}

func TestHandleVersions_UnknownPrompt(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleVersions(context.Background(), makeRequest(map[string]any{
		"prompt_id": "nope",
	}))
	if err != nil {
		t.Fatalf("HandleVersions failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for unknown prompt")
	}
}

func TestHandleCommits(t *testing.T) {
	database, cfg := testSetup(t)
	promptID, commitID := seedPrompt(t, database, cfg, "greeting", "v1", "Hello")
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleCommits(context.Background(), makeRequest(map[string]any{
		"prompt_id": promptID,
		"version":   "v1",
	}))
	if err != nil {
		t.Fatalf("HandleCommits failed: %v", err)
	}

	var out ops.ListCommitsOutput
	resultJSON(t, result, &out)
	if len(out.Commits) != 1 || out.Commits[0].ID != commitID {
		t.Fatalf("commits = %+v, want single %s", out.Commits, commitID)
	}
}

func TestHandleContent(t *testing.T) {
	database, cfg := testSetup(t)
	promptID, commitID := seedPrompt(t, database, cfg, "greeting", "v1", "Hello")
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleContent(context.Background(), makeRequest(map[string]any{
		"prompt_id": promptID,
		"version":   "v1",
		"commit_id": commitID,
	}))
	if err != nil {
		t.Fatalf("HandleContent failed: %v", err)
	}

	var out ops.GetContentOutput
	resultJSON(t, result, &out)
	if out.Content != "Hello" {
		t.Errorf("content = %q, want %q", out.Content, "Hello")
	}
}

func TestHandleContent_MissingArgs(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleContent(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleContent failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing arguments")
	}
}

func TestHandleLatest(t *testing.T) {
	database, cfg := testSetup(t)
	promptID, commitID := seedPrompt(t, database, cfg, "greeting", "v1", "Hello")
	h := NewHandlers(database, cfg, nil)

	result, err := h.HandleLatest(context.Background(), makeRequest(map[string]any{
		"prompt_id": promptID,
	}))
	if err != nil {
		t.Fatalf("HandleLatest failed: %v", err)
	}

	var out ops.LatestOutput
	resultJSON(t, result, &out)
	if out.Item == nil {
		t.Fatal("latest item is nil, want promoted commit")
	}
	if out.Item.CommitID != commitID || out.Item.Content != "Hello" {
		t.Errorf("latest = %+v, want commit %s with Hello", out.Item, commitID)
	}
}
