// Package tools provides the tool set handed to the research agent:
// workspace-rooted filesystem tools, a web page reader, and a secondary
// LLM report writer.
package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const truncationMarker = "\n[output truncated]"

// maxToolOutputBytes bounds any single tool observation.
const maxToolOutputBytes = 64 * 1024

// resolvePath resolves a path within root and rejects escapes.
func resolvePath(root, path string) (string, string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", "", fmt.Errorf("path is empty")
	}
	cleaned := filepath.Clean(trimmed)
	var rel string
	if filepath.IsAbs(cleaned) {
		relative, err := filepath.Rel(root, cleaned)
		if err != nil {
			return "", "", fmt.Errorf("resolve path %q: %w", path, err)
		}
		rel = relative
	} else {
		rel = cleaned
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", "", fmt.Errorf("path %q escapes root", path)
	}
	abs := filepath.Join(root, rel)
	return rel, abs, nil
}

// truncateOutput trims output and appends a truncation marker.
func truncateOutput(output string, max int) string {
	if max <= 0 || len(output) <= max {
		return output
	}
	if max <= len(truncationMarker) {
		return truncationMarker[:max]
	}
	return output[:max-len(truncationMarker)] + truncationMarker
}

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}
