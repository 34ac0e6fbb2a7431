// Package webui serves the browser front-end: a subject form, live
// streaming of a run's tokens and events, the finished report, and the
// run history.
package webui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"deepsearch/internal/agent"
	"deepsearch/internal/history"
	"deepsearch/internal/spec"
)

// SolverFactory builds a solver bound to a run's event sink.
type SolverFactory func(sink agent.Sink) (agent.Solver, error)

// Config captures the settings for the web front-end.
type Config struct {
	Addr string
	// Root anchors relative paths from the search configuration.
	Root      string
	Spec      spec.Config
	NewSolver SolverFactory
	// History is optional; without it the index shows no past runs.
	History *history.Store
	// Stderr receives non-fatal warnings. Nil discards them.
	Stderr io.Writer
}

// Serve starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("webui: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("webui: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

// NewHandler builds the HTTP handler for the web front-end.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.NewSolver == nil {
		return nil, errors.New("webui: solver factory is required")
	}
	server := &Server{cfg: cfg, runs: make(map[string]*run)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("POST /search", server.handleSearch)
	mux.HandleFunc("GET /runs/{id}", server.handleRun)
	mux.HandleFunc("GET /runs/{id}/events", server.handleEvents)
	mux.HandleFunc("GET /runs/{id}/report", server.handleReport)
	return mux, nil
}
