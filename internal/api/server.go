// Package api serves the admin console REST interface: a chi router under
// /api with bearer-token auth on everything except the status probe.
package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/promptshelf/promptshelf/internal/auth"
	"github.com/promptshelf/promptshelf/internal/config"
	"github.com/promptshelf/promptshelf/internal/ops"
)

// NewServer builds the HTTP server. cache may be nil when Redis is not
// configured.
func NewServer(db *sql.DB, cfg *config.Config, cache ops.ContentCache, version string) *http.Server {
	h := &Handlers{
		db:      db,
		cfg:     cfg,
		cache:   cache,
		version: version,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.HandleStatus)

		r.Route("/prompt", func(r chi.Router) {
			r.Use(auth.Authenticate(cfg.JWTSecret))

			r.Get("/query", h.HandleQuery)
			r.Post("/create_prompt", h.HandleCreatePrompt)
			r.Delete("/", h.HandleDeletePrompt)
			r.Get("/list_version", h.HandleListVersion)
			r.Post("/create_node", h.HandleCreateNode)
			r.Get("/list_commit", h.HandleListCommit)
			r.Post("/create_commit", h.HandleCreateCommit)
			r.Get("/content", h.HandleContent)
			r.Post("/rollback", h.HandleRollback)
		})
	})

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: r,
	}
}

// Run starts the server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("PromptShelf API listening at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
