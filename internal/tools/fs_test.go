package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFileToolReadsWithinRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.md"), []byte("# Notes\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tool, err := NewReadFileTool(root)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{"path": "notes.md"})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out.(string) != "# Notes\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestReadFileToolRejectsEscape(t *testing.T) {
	tool, err := NewReadFileTool(t.TempDir())
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	_, err = tool.Forward(map[string]interface{}{"path": "../secrets"})
	if err == nil || !strings.Contains(err.Error(), "escapes root") {
		t.Fatalf("expected escape error, got %v", err)
	}
}

func TestWriteFileToolCreatesParents(t *testing.T) {
	root := t.TempDir()
	tool, err := NewWriteFileTool(root)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{
		"path":    "results/report_001.md",
		"content": "# Report\n",
	})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if !strings.Contains(out.(string), "results/report_001.md") {
		t.Fatalf("output = %q", out)
	}
	data, err := os.ReadFile(filepath.Join(root, "results", "report_001.md"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "# Report\n" {
		t.Fatalf("contents = %q", data)
	}
}

func TestListDirectoryToolMarksDirs(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "results"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "readme.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tool, err := NewListDirectoryTool(root)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{"path": "."})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	listing := out.(string)
	if !strings.Contains(listing, "results/") || !strings.Contains(listing, "readme.md") {
		t.Fatalf("listing = %q", listing)
	}
}

func TestListDirectoryToolEmptyDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tool, err := NewListDirectoryTool(root)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{"path": "empty"})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if !strings.Contains(out.(string), "empty is empty") {
		t.Fatalf("output = %q", out)
	}
}

func TestTruncateOutputBoundsLongText(t *testing.T) {
	long := strings.Repeat("a", 100)
	out := truncateOutput(long, 50)
	if len(out) != 50 {
		t.Fatalf("len = %d", len(out))
	}
	if !strings.HasSuffix(out, truncationMarker) {
		t.Fatalf("missing truncation marker: %q", out)
	}
}
