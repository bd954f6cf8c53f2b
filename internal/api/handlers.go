package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/promptshelf/promptshelf/internal/auth"
	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// Handlers holds shared dependencies for all API handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	cache   ops.ContentCache
	version string
	started time.Time
}

// HandleStatus reports service liveness. Public, no auth.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respondOK(w, "ok", map[string]any{
		"version":     h.version,
		"uptime_secs": int64(time.Since(h.started).Seconds()),
	})
}

// HandleQuery lists all prompts, most recently updated first.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListPrompts(r.Context(), h.db)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "query prompts finished", out.Items)
}

// HandleCreatePrompt registers a new prompt.
func (h *Handlers) HandleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	out, err := ops.CreatePrompt(r.Context(), h.db, ops.CreatePromptInput{Name: body.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "prompt created", out)
}

// HandleDeletePrompt removes a prompt with all versions and commits.
func (h *Handlers) HandleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	out, err := ops.DeletePrompt(r.Context(), h.db, ops.DeletePromptInput{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "prompt deleted", out)
}

// HandleListVersion lists a prompt's version names, newest-updated first.
func (h *Handlers) HandleListVersion(w http.ResponseWriter, r *http.Request) {
	promptID := r.URL.Query().Get("prompt_id")
	out, err := ops.ListVersions(r.Context(), h.db, ops.ListVersionsInput{PromptID: promptID})
	if err != nil {
		respondError(w, err)
		return
	}

	names := make([]string, 0, len(out.Versions))
	for _, v := range out.Versions {
		names = append(names, v.Name)
	}
	respondOK(w, "query versions finished", names)
}

// HandleCreateNode creates a named version under a prompt.
func (h *Handlers) HandleCreateNode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromptID string `json:"prompt_id"`
		Version  string `json:"version"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	out, err := ops.CreateVersion(r.Context(), h.db, ops.CreateVersionInput{
		PromptID: body.PromptID,
		Version:  body.Version,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "version created", out)
}

// HandleListCommit lists a version's commit metadata, newest first.
func (h *Handlers) HandleListCommit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := ops.ListCommits(r.Context(), h.db, ops.ListCommitsInput{
		PromptID: q.Get("prompt_id"),
		Version:  q.Get("version"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "query commits finished", out.Commits)
}

// HandleCreateCommit appends a commit to a version's log. The author is the
// authenticated caller, never a field of the request body.
func (h *Handlers) HandleCreateCommit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromptID string `json:"prompt_id"`
		Version  string `json:"version"`
		Desp     string `json:"desp"`
		Content  string `json:"content"`
		AsLatest bool   `json:"as_latest"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	out, err := ops.CreateCommit(r.Context(), h.db, h.cfg, ops.CreateCommitInput{
		PromptID: body.PromptID,
		Version:  body.Version,
		Author:   callerEmail(r),
		Desp:     body.Desp,
		Content:  body.Content,
		AsLatest: body.AsLatest,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "commit created", out)
}

// HandleContent returns a commit's payload, optionally rendered to HTML
// with ?render=html.
func (h *Handlers) HandleContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := ops.GetContent(r.Context(), h.db, h.cache, ops.GetContentInput{
		PromptID: q.Get("prompt_id"),
		Version:  q.Get("version"),
		CommitID: q.Get("commit_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if q.Get("render") == "html" {
		html, err := renderMarkdown(out.Content)
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, "content rendered", html)
		return
	}
	respondOK(w, "content fetched", out.Content)
}

// HandleRollback restores a historical commit as a new latest commit.
func (h *Handlers) HandleRollback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromptID string `json:"prompt_id"`
		Version  string `json:"version"`
		CommitID string `json:"commit_id"`
		Desp     string `json:"desp"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	out, err := ops.Rollback(r.Context(), h.db, ops.RollbackInput{
		PromptID: body.PromptID,
		Version:  body.Version,
		CommitID: body.CommitID,
		Author:   callerEmail(r),
		Desp:     body.Desp,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "rollback finished", out)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewInvalidRequest("invalid JSON body")
	}
	return nil
}

func callerEmail(r *http.Request) string {
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		return claims.Email
	}
	return ""
}
