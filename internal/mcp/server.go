// Package mcp exposes the prompt store to agents over the Model Context
// Protocol. The surface is read-only: agents pull prompt content, the admin
// console owns all mutations.
package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"prompt_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"prompt_versions": {
		def:     versionsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVersions },
	},
	"prompt_commits": {
		def:     commitsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCommits },
	},
	"prompt_content": {
		def:     contentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleContent },
	},
	"prompt_latest": {
		def:     latestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLatest },
	},
}

// AllToolNames returns a list of all registered tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with the prompt tools registered.
// cache may be nil when Redis is not configured.
func NewServer(db *sql.DB, cfg *config.Config, cache ops.ContentCache, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"promptshelf",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg, cache)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, cache ops.ContentCache, version string) error {
	s := NewServer(db, cfg, cache, version)
	return server.ServeStdio(s)
}
