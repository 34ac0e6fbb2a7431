// Command seedhistory populates a history database with sample runs so
// the history command and the web UI can be demoed without spending
// LLM credits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"deepsearch/internal/event"
	"deepsearch/internal/history"

	"github.com/google/uuid"
)

var sampleSubjects = []string{
	"the current state of tidal power generation",
	"how CRDTs are used in collaborative editors",
	"supply chains for solid-state batteries",
	"the history of container orchestration",
}

func main() {
	outPath := flag.String("out", ".deepsearch/history.duckdb", "history database path")
	runs := flag.Int("runs", len(sampleSubjects), "number of sample runs to record")
	flag.Parse()

	if err := seed(*outPath, *runs); err != nil {
		fmt.Fprintf(os.Stderr, "seed history: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d runs into %s\n", *runs, *outPath)
}

func seed(path string, runs int) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Now().Add(-time.Duration(runs) * time.Hour)
	for i := 0; i < runs; i++ {
		subject := sampleSubjects[i%len(sampleSubjects)]
		started := base.Add(time.Duration(i) * time.Hour)
		run := history.Run{
			SessionID:   uuid.NewString(),
			Subject:     subject,
			Model:       "openai/gpt-4o-mini",
			ReportFile:  fmt.Sprintf("report_%03d.md", i+1),
			ReportFound: i%3 != 2,
			Answer:      "Sample answer for: " + subject,
			StartedAt:   started,
			FinishedAt:  started.Add(7 * time.Minute),
		}
		events := []event.Event{
			event.New("task_think_start", map[string]any{"step": 1}),
			event.New("tool_execution_start", map[string]any{"tool": "web_search"}),
			event.New("tool_execution_end", map[string]any{"tool": "web_search", "duration_ms": 840}),
			event.New("task_think_end", map[string]any{"step": 1}),
			event.New("task_complete", nil),
		}
		if err := store.RecordRun(ctx, run, events); err != nil {
			return fmt.Errorf("record run %d: %w", i+1, err)
		}
	}
	return nil
}
