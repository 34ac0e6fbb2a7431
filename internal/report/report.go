// Package report allocates report filenames and retrieves finished
// reports from the output directory.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// ErrNotFound is returned when the expected report never appears within
// the polling window.
var ErrNotFound = errors.New("report not found")

// FixedName is the report filename used when auto-numbering is disabled.
const FixedName = "report.md"

const (
	// DefaultPollInterval is the delay between report existence checks.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultPollTimeout bounds the total wait for a report to appear.
	DefaultPollTimeout = 5 * time.Second
)

var numberedName = regexp.MustCompile(`^report_(\d{3})\.md$`)

// NextName returns the next auto-numbered report filename for dir: one
// past the highest existing report_NNN.md, or report_001.md when the
// directory holds none. Files that do not match the pattern are ignored.
// Concurrent sessions against the same directory can race this scan;
// single-writer use is assumed.
func NextName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return numberName(1), nil
		}
		return "", fmt.Errorf("scan report dir: %w", err)
	}
	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := numberedName.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return numberName(highest + 1), nil
}

func numberName(n int) string {
	return fmt.Sprintf("report_%03d.md", n)
}

// Wait polls dir for the named report every interval until it appears or
// the timeout elapses, then returns its contents. A report that never
// appears yields ErrNotFound; callers treat that as a message in place
// of the report, not a failure of the search.
func Wait(ctx context.Context, dir, name string, interval, timeout time.Duration) (string, error) {
	path := filepath.Join(dir, name)
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read report: %w", err)
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: %s after %s", ErrNotFound, path, timeout)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
