package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deepsearch/internal/agent"
	"deepsearch/internal/config"
	"deepsearch/internal/session"
	"deepsearch/internal/spec"
)

type fakeSolver struct {
	task    string
	opts    agent.SolveOptions
	answer  string
	err     error
	onSolve func()
}

func (f *fakeSolver) Solve(ctx context.Context, task string, opts agent.SolveOptions) (string, error) {
	f.task = task
	f.opts = opts
	if f.onSolve != nil {
		f.onSolve()
	}
	return f.answer, f.err
}

func testConfig(outputDir string) spec.Config {
	cfg := spec.Config{Version: 1}
	cfg.Search.OutputDir = outputDir
	config.Normalize(&cfg)
	return cfg
}

func TestRunWritesPromptWithAllocatedReportName(t *testing.T) {
	root := t.TempDir()
	outputDir := filepath.Join(root, "results")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, existing := range []string{"report_001.md", "report_002.md", "report_005.md"} {
		if err := os.WriteFile(filepath.Join(outputDir, existing), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	solver := &fakeSolver{answer: "done"}
	solver.onSolve = func() {
		if err := os.WriteFile(filepath.Join(outputDir, "report_006.md"), []byte("# Report\n"), 0o644); err != nil {
			t.Errorf("write report: %v", err)
		}
	}

	result, err := Run(context.Background(), Params{
		Subject:      "tidal power",
		Config:       testConfig(outputDir),
		Solver:       solver,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ReportFile != "report_006.md" {
		t.Fatalf("report file = %q", result.ReportFile)
	}
	if !result.ReportFound || result.Report != "# Report\n" {
		t.Fatalf("report not retrieved: %+v", result)
	}
	if !strings.Contains(solver.task, "tidal power") {
		t.Fatalf("prompt missing subject")
	}
	if !strings.Contains(solver.task, "report_006.md") {
		t.Fatalf("prompt missing report file")
	}
	if !solver.opts.Streaming {
		t.Fatalf("expected streaming solve")
	}
	if solver.opts.MaxIterations != config.DefaultMaxIterations {
		t.Fatalf("max iterations = %d", solver.opts.MaxIterations)
	}
}

func TestRunMissingReportIsNotAnError(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "results")
	solver := &fakeSolver{answer: "the answer"}
	result, err := Run(context.Background(), Params{
		Subject:      "subject",
		Config:       testConfig(outputDir),
		Solver:       solver,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ReportFound {
		t.Fatalf("expected report not found")
	}
	if result.Answer != "the answer" {
		t.Fatalf("answer = %q", result.Answer)
	}
}

func TestRunFixedNamingUsesReportMD(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "results")
	cfg := testConfig(outputDir)
	cfg.Search.ReportNaming = config.ReportNamingFixed
	solver := &fakeSolver{}
	solver.onSolve = func() {
		_ = os.WriteFile(filepath.Join(outputDir, "report.md"), []byte("fixed"), 0o644)
	}
	result, err := Run(context.Background(), Params{
		Subject:      "subject",
		Config:       cfg,
		Solver:       solver,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ReportFile != "report.md" || result.Report != "fixed" {
		t.Fatalf("result = %+v", result)
	}
}

func TestRunRejectsBlankSubject(t *testing.T) {
	_, err := Run(context.Background(), Params{
		Subject: "   ",
		Config:  testConfig(t.TempDir()),
		Solver:  &fakeSolver{},
	})
	if err == nil {
		t.Fatalf("expected error for blank subject")
	}
}

func TestRunSolveErrorPropagates(t *testing.T) {
	solver := &fakeSolver{err: context.DeadlineExceeded}
	sess := session.New("subject")
	_, err := Run(context.Background(), Params{
		Subject: "subject",
		Config:  testConfig(filepath.Join(t.TempDir(), "results")),
		Solver:  solver,
		Session: sess,
	})
	if err == nil || !strings.Contains(err.Error(), "solve") {
		t.Fatalf("expected solve error, got %v", err)
	}

	events := sess.Events()
	if len(events) == 0 {
		t.Fatalf("expected a terminal event in the session log")
	}
	last := events[len(events)-1]
	if last.Name != "task_failed" {
		t.Fatalf("terminal event = %q", last.Name)
	}
	detail, ok := last.Data.Field("error")
	if !ok || !strings.Contains(detail.Leaf, "deadline") {
		t.Fatalf("error field = %+v", last.Data)
	}
}
