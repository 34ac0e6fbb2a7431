package webui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"deepsearch/internal/history"
	"deepsearch/internal/runner"
	"deepsearch/internal/session"
)

// Server tracks active and finished runs for the web front-end.
type Server struct {
	cfg  Config
	mu   sync.Mutex
	runs map[string]*run
}

// run is one search run owned by the server.
type run struct {
	id      string
	subject string
	hub     *hub
	done    chan struct{}

	mu     sync.Mutex
	result runner.Result
	err    error
}

func (r *run) outcome() (runner.Result, bool, error) {
	select {
	case <-r.done:
	default:
		return runner.Result{}, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, true, r.err
}

// start launches a run for the subject and registers it.
func (s *Server) start(subject string) (*run, error) {
	sess := session.New(subject)
	h := newHub(sess)
	solver, err := s.cfg.NewSolver(h)
	if err != nil {
		return nil, fmt.Errorf("build solver: %w", err)
	}

	r := &run{
		id:      sess.ID(),
		subject: subject,
		hub:     h,
		done:    make(chan struct{}),
	}
	s.mu.Lock()
	s.runs[r.id] = r
	s.mu.Unlock()

	go func() {
		result, runErr := runner.Run(context.Background(), runner.Params{
			Subject: subject,
			Config:  s.cfg.Spec,
			Root:    s.cfg.Root,
			Session: sess,
			Solver:  solver,
			History: s.cfg.History,
			Stderr:  s.cfg.Stderr,
		})
		r.mu.Lock()
		r.result = result
		r.err = runErr
		r.mu.Unlock()
		h.Close()
		close(r.done)
	}()
	return r, nil
}

func (s *Server) lookup(id string) (*run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	return r, ok
}

// handleIndex shows the subject form and recent runs.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var recent []history.Run
	if s.cfg.History != nil {
		runs, err := s.cfg.History.ListRuns(r.Context(), 20)
		if err == nil {
			recent = runs
		} else if s.cfg.Stderr != nil {
			fmt.Fprintf(s.cfg.Stderr, "warning: list runs: %v\n", err)
		}
	}
	renderPage(w, indexPage(recent))
}

// handleSearch starts a run and redirects to its live page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	subject := strings.TrimSpace(r.FormValue("subject"))
	if subject == "" {
		http.Error(w, "subject is required", http.StatusBadRequest)
		return
	}
	active, err := s.start(subject)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/runs/"+active.id, http.StatusSeeOther)
}

// handleRun shows the live page for a run.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	active, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	renderPage(w, runPage(active.id, active.subject))
}

// handleReport serves the finished report as markdown.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	active, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	result, done, err := active.outcome()
	if !done {
		http.Error(w, "run still in progress", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !result.ReportFound {
		http.Error(w, "report was not produced", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(result.Report))
}
