package vcs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// TestDiscoverRepoRoot verifies repo root discovery.
func TestDiscoverRepoRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "repo")
	subdir := filepath.Join(root, "nested")

	fake := &fakeGitRunner{responses: map[string]string{
		"rev-parse --show-toplevel": root,
	}}
	client := NewClient(fake)

	actualRoot, err := client.DiscoverRepoRoot(context.Background(), subdir)
	if err != nil {
		t.Fatalf("discover repo root: %v", err)
	}
	if actualRoot != root {
		t.Fatalf("expected root %q, got %q", root, actualRoot)
	}
}

// TestDiscoverRepoRootError surfaces git failures.
func TestDiscoverRepoRootError(t *testing.T) {
	client := NewClient(&fakeGitRunner{responses: map[string]string{}})
	if _, err := client.DiscoverRepoRoot(context.Background(), t.TempDir()); err == nil {
		t.Fatalf("expected error outside a repo")
	}
}

// fakeGitRunner returns canned outputs for git commands in tests.
type fakeGitRunner struct {
	responses map[string]string
}

// Run satisfies gitRunner for test doubles.
func (f *fakeGitRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if value, ok := f.responses[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("unexpected git args: %s", key)
}
