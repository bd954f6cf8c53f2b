package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/promptshelf/promptshelf/internal/api"
	"github.com/promptshelf/promptshelf/internal/auth"
	"github.com/promptshelf/promptshelf/internal/cache"
	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/errors"
	"github.com/promptshelf/promptshelf/internal/mcp"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "promptshelf",
		Usage:   "Versioned prompt store",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(db, cfg),
			mcpCmd(db, cfg),
			tokenCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd runs the REST API server.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the admin console REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			if cfg.JWTSecret == "" {
				return outputError(errors.NewInvalidRequest("jwt_secret must be set in config.json or PROMPTSHELF_JWT_SECRET"))
			}
			if bind := c.String("bind"); bind != "" {
				cfg.Bind = bind
			}
			if port := c.Int("port"); port != 0 {
				cfg.Port = port
			}

			contentCache, err := openCache(c.Context, cfg)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			srv := api.NewServer(db, cfg, contentCache, Version)
			return api.Run(srv)
		},
	}
}

// mcpCmd runs the read-only MCP server over stdio.
func mcpCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio (read-only prompt access for agents)",
		Action: func(c *cli.Context) error {
			contentCache, err := openCache(c.Context, cfg)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return mcp.Run(db, cfg, contentCache, Version)
		},
	}
}

// tokenCmd mints an operator bearer token from the configured secret.
func tokenCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint a bearer token for API access",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true, Usage: "Identity recorded as commit author"},
			&cli.IntFlag{Name: "expire-hours", Usage: "Token lifetime in hours (defaults to config)"},
		},
		Action: func(c *cli.Context) error {
			if cfg == nil || cfg.JWTSecret == "" {
				return outputError(errors.NewInvalidRequest("jwt_secret must be set in config.json or PROMPTSHELF_JWT_SECRET"))
			}

			hours := c.Int("expire-hours")
			if hours <= 0 {
				hours = cfg.JWTExpireHours
			}

			token, err := auth.Sign(cfg.JWTSecret, c.String("email"), time.Duration(hours)*time.Hour)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{
				"token":        token,
				"expire_hours": hours,
			})
		},
	}
}

// openCache connects the Redis content cache when configured. A nil cache
// disables caching; every operation works without it.
func openCache(ctx context.Context, cfg *config.Config) (ops.ContentCache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, ttl)
}

// outputJSON formats successful output as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if shelfErr, ok := err.(*errors.ShelfError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", shelfErr.Code, shelfErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
