// Package prompt defines the domain model for versioned prompts: a prompt
// owns named versions, each version owns an append-only log of commits, and
// every commit references an immutable content payload.
package prompt

// Prompt is the top-level named artifact under version control.
type Prompt struct {
	// ID is a UUID that uniquely identifies this prompt
	ID string `json:"id"`

	// Name is a display label; duplicates across prompts are allowed
	Name string `json:"name"`

	// LatestVersion names the version holding the promoted commit (nullable)
	LatestVersion *string `json:"latest_version"`

	// LatestCommit is the id of the promoted commit (nullable)
	LatestCommit *string `json:"latest_commit"`

	// CreatedAt is the Unix timestamp in milliseconds when the prompt was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt bumps on every version or commit mutation under this prompt
	UpdatedAt int64 `json:"updated_at"`
}

// Summary is the listing view of a prompt.
type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	LatestVersion *string `json:"latest_version"`
	LatestCommit  *string `json:"latest_commit"`
	Versions      int     `json:"versions"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
}

// Version is a named branch-less line of history under a prompt.
// Identity is (PromptID, Name); versions are never renamed or deleted.
type Version struct {
	PromptID  string `json:"prompt_id"`
	Name      string `json:"version"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Commit is an immutable snapshot of content within a version.
type Commit struct {
	// ID is a ULID, globally unique across all versions and prompts
	ID string `json:"commit_id"`

	PromptID string `json:"prompt_id"`
	Version  string `json:"version"`

	// Seq is the position in the version's log, 1-based, allocated at append
	Seq int64 `json:"seq"`

	Author string `json:"author"`
	Desp   string `json:"desp"`

	// ContentRef addresses the payload in the content store
	ContentRef string `json:"content_ref"`

	CreatedAt int64 `json:"created_at"`
}

// ToSummary converts a Prompt to its listing view.
func (p *Prompt) ToSummary(versions int) Summary {
	return Summary{
		ID:            p.ID,
		Name:          p.Name,
		LatestVersion: p.LatestVersion,
		LatestCommit:  p.LatestCommit,
		Versions:      versions,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
