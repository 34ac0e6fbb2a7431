// Package runner orchestrates a single search run: allocate the report
// name, build the mission prompt, drive the solver, retrieve the
// report, and record history.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deepsearch/internal/agent"
	"deepsearch/internal/config"
	"deepsearch/internal/event"
	"deepsearch/internal/history"
	"deepsearch/internal/prompt"
	"deepsearch/internal/report"
	"deepsearch/internal/session"
	"deepsearch/internal/spec"
)

// Params carries everything one search run needs.
type Params struct {
	Subject string
	Config  spec.Config
	// Root anchors relative paths from the config.
	Root    string
	Session *session.Session
	Solver  agent.Solver
	// History is optional; recording failures are warnings, not errors.
	History *history.Store
	// Stderr receives non-fatal warnings. Nil discards them.
	Stderr io.Writer

	// Poll overrides for tests; zero values use the report defaults.
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Result is the outcome of a completed search run.
type Result struct {
	SessionID   string
	Subject     string
	Answer      string
	Report      string
	ReportFile  string
	ReportFound bool
	OutputDir   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Run executes one search run to completion. A report that never
// appears is not an error: the result carries ReportFound=false and the
// answer text stands in for the report.
func Run(ctx context.Context, params Params) (Result, error) {
	subject := strings.TrimSpace(params.Subject)
	if subject == "" {
		return Result{}, fmt.Errorf("subject is required")
	}
	if params.Solver == nil {
		return Result{}, fmt.Errorf("solver is required")
	}
	if params.Session == nil {
		params.Session = session.New(subject)
	}

	outputDir := resolveOutputDir(params.Root, params.Config.Search.OutputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	reportFile, err := allocateReportName(params.Config.Search.ReportNaming, outputDir)
	if err != nil {
		return Result{}, err
	}

	task, err := prompt.Build(ctx, prompt.Params{
		Subject:       subject,
		OutputDir:     params.Config.Search.OutputDir,
		ReportFile:    reportFile,
		MaxIterations: params.Config.Search.MaxIterations,
		MinWords:      params.Config.Search.MinWords,
	})
	if err != nil {
		return Result{}, fmt.Errorf("build prompt: %w", err)
	}

	started := time.Now()
	answer, err := params.Solver.Solve(ctx, task, agent.SolveOptions{
		Streaming:     true,
		MaxIterations: params.Config.Search.MaxIterations,
	})
	if err != nil {
		// A failed solve still ends the session's event log with a
		// terminal entry.
		params.Session.Record(event.New("task_failed", event.Mapping("error", err.Error())))
		return Result{SessionID: params.Session.ID(), Subject: subject, StartedAt: started}, fmt.Errorf("solve: %w", err)
	}

	interval := params.PollInterval
	if interval <= 0 {
		interval = report.DefaultPollInterval
	}
	timeout := params.PollTimeout
	if timeout <= 0 {
		timeout = report.DefaultPollTimeout
	}
	reportText, err := report.Wait(ctx, outputDir, reportFile, interval, timeout)
	found := err == nil
	if err != nil && !errors.Is(err, report.ErrNotFound) {
		return Result{}, err
	}

	result := Result{
		SessionID:   params.Session.ID(),
		Subject:     subject,
		Answer:      answer,
		Report:      reportText,
		ReportFile:  reportFile,
		ReportFound: found,
		OutputDir:   outputDir,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}

	recordHistory(ctx, params, result)
	return result, nil
}

func resolveOutputDir(root, dir string) string {
	if filepath.IsAbs(dir) || root == "" {
		return dir
	}
	return filepath.Join(root, dir)
}

func allocateReportName(mode, outputDir string) (string, error) {
	if mode == config.ReportNamingFixed {
		return report.FixedName, nil
	}
	name, err := report.NextName(outputDir)
	if err != nil {
		return "", fmt.Errorf("allocate report name: %w", err)
	}
	return name, nil
}

// recordHistory stores the run if a history store is configured. The
// search result is never lost because bookkeeping failed.
func recordHistory(ctx context.Context, params Params, result Result) {
	if params.History == nil {
		return
	}
	run := history.Run{
		SessionID:   result.SessionID,
		Subject:     result.Subject,
		Model:       params.Config.LLM.Model,
		ReportFile:  result.ReportFile,
		ReportFound: result.ReportFound,
		Answer:      result.Answer,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
	}
	if err := params.History.RecordRun(ctx, run, params.Session.Events()); err != nil && params.Stderr != nil {
		fmt.Fprintf(params.Stderr, "warning: record history: %v\n", err)
	}
}
