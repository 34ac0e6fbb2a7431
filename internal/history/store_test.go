package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"deepsearch/internal/event"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.duckdb"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	started := time.Now().Add(-time.Minute)
	run := Run{
		SessionID:   "session-1",
		Subject:     "tidal power",
		Model:       "openai/gpt-4o-mini",
		ReportFile:  "report_001.md",
		ReportFound: true,
		Answer:      "done",
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	events := []event.Event{
		event.New("task_think_start", map[string]any{"step": 1}),
		event.New("task_complete", nil),
	}
	if err := store.RecordRun(context.Background(), run, events); err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %+v", runs)
	}
	got := runs[0]
	if got.SessionID != "session-1" || got.Subject != "tidal power" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.EventCount != 2 {
		t.Fatalf("event count = %d", got.EventCount)
	}
	if !got.ReportFound {
		t.Fatalf("report_found lost")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"older", "newer"} {
		run := Run{
			SessionID:  id,
			Subject:    id,
			Model:      "m",
			ReportFile: "report.md",
			Answer:     "",
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}
		if err := store.RecordRun(context.Background(), run, nil); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].SessionID != "newer" {
		t.Fatalf("order wrong: %+v", runs)
	}
}

func TestPayloadJSONRoundTripsTree(t *testing.T) {
	v := event.FromAny(map[string]any{
		"a": map[string]any{"b": 1},
		"c": []any{1, 2},
	})
	payload, err := PayloadJSON(v)
	if err != nil {
		t.Fatalf("payload json: %v", err)
	}
	want := `{"a":{"b":"1"},"c":["1","2"]}`
	if payload != want {
		t.Fatalf("payload = %s, want %s", payload, want)
	}
}

func TestPayloadJSONNil(t *testing.T) {
	payload, err := PayloadJSON(event.FromAny(nil))
	if err != nil {
		t.Fatalf("payload json: %v", err)
	}
	if payload != "null" {
		t.Fatalf("payload = %s", payload)
	}
}
