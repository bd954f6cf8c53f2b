package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db    *sql.DB
	cfg   *config.Config
	cache ops.ContentCache
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, cache ops.ContentCache) *Handlers {
	return &Handlers{db: db, cfg: cfg, cache: cache}
}

// Tool definitions

var listToolDef = mcp.NewTool("prompt_list",
	mcp.WithDescription("List all prompts with their latest version and commit pointers, most recently updated first."),
)

var versionsToolDef = mcp.NewTool("prompt_versions",
	mcp.WithDescription("List the named versions of a prompt, most recently updated first."),
	mcp.WithString("prompt_id", mcp.Required(), mcp.Description("Prompt id (UUID).")),
)

var commitsToolDef = mcp.NewTool("prompt_commits",
	mcp.WithDescription("List a version's commit history, newest first. Metadata only, no payloads."),
	mcp.WithString("prompt_id", mcp.Required(), mcp.Description("Prompt id (UUID).")),
	mcp.WithString("version", mcp.Required(), mcp.Description("Version name within the prompt.")),
)

var contentToolDef = mcp.NewTool("prompt_content",
	mcp.WithDescription("Fetch the content payload of a specific commit. The commit must belong to the named version."),
	mcp.WithString("prompt_id", mcp.Required(), mcp.Description("Prompt id (UUID).")),
	mcp.WithString("version", mcp.Required(), mcp.Description("Version name within the prompt.")),
	mcp.WithString("commit_id", mcp.Required(), mcp.Description("Commit id (ULID).")),
)

var latestToolDef = mcp.NewTool("prompt_latest",
	mcp.WithDescription("Fetch a prompt's promoted content: the commit its latest pointers reference."),
	mcp.WithString("prompt_id", mcp.Required(), mcp.Description("Prompt id (UUID).")),
)

// Request types for each tool

// VersionsRequest represents the arguments for prompt_versions.
type VersionsRequest struct {
	PromptID string `json:"prompt_id"`
}

// CommitsRequest represents the arguments for prompt_commits.
type CommitsRequest struct {
	PromptID string `json:"prompt_id"`
	Version  string `json:"version"`
}

// ContentRequest represents the arguments for prompt_content.
type ContentRequest struct {
	PromptID string `json:"prompt_id"`
	Version  string `json:"version"`
	CommitID string `json:"commit_id"`
}

// LatestRequest represents the arguments for prompt_latest.
type LatestRequest struct {
	PromptID string `json:"prompt_id"`
}

// Handler implementations

// HandleList handles the prompt_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListPrompts(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleVersions handles the prompt_versions tool call.
func (h *Handlers) HandleVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VersionsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListVersions(ctx, h.db, ops.ListVersionsInput{PromptID: input.PromptID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCommits handles the prompt_commits tool call.
func (h *Handlers) HandleCommits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommitsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCommits(ctx, h.db, ops.ListCommitsInput{
		PromptID: input.PromptID,
		Version:  input.Version,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleContent handles the prompt_content tool call.
func (h *Handlers) HandleContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ContentRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetContent(ctx, h.db, h.cache, ops.GetContentInput{
		PromptID: input.PromptID,
		Version:  input.Version,
		CommitID: input.CommitID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLatest handles the prompt_latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LatestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Latest(ctx, h.db, h.cache, ops.LatestInput{PromptID: input.PromptID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from a structured error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if shelfErr, ok := err.(*errors.ShelfError); ok {
		errorObj := map[string]any{
			"code":    shelfErr.Code,
			"message": shelfErr.Message,
			"status":  shelfErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if shelfErr.Code != errors.ErrInternal && shelfErr.Details != nil {
			errorObj["details"] = shelfErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
