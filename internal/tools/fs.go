package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

// NewReadFileTool returns a tool that reads files under root.
func NewReadFileTool(root string) (smoltools.Tool, error) {
	return smoltools.NewBaseTool(
		"read_file",
		"Read a text file from the workspace and return its contents.",
		map[string]smoltools.InputProperty{
			"path": {Type: "string", Description: "Path of the file to read, relative to the workspace root."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return nil, err
			}
			rel, abs, err := resolvePath(root, path)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(abs)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", rel, err)
			}
			return truncateOutput(string(data), maxToolOutputBytes), nil
		},
	)
}

// NewWriteFileTool returns a tool that writes files under root, creating
// parent directories as needed. The report lands through this tool.
func NewWriteFileTool(root string) (smoltools.Tool, error) {
	return smoltools.NewBaseTool(
		"write_file",
		"Write content to a file in the workspace, creating parent directories as needed.",
		map[string]smoltools.InputProperty{
			"path":    {Type: "string", Description: "Destination path, relative to the workspace root."},
			"content": {Type: "string", Description: "Full content to write."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return nil, err
			}
			content, ok := args["content"].(string)
			if !ok {
				return nil, fmt.Errorf("content must be a string")
			}
			rel, abs, err := resolvePath(root, path)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
				return nil, fmt.Errorf("create parent dirs for %s: %w", rel, err)
			}
			if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", rel, err)
			}
			return fmt.Sprintf("wrote %d bytes to %s", len(content), rel), nil
		},
	)
}

// NewListDirectoryTool returns a tool that lists a directory under root.
func NewListDirectoryTool(root string) (smoltools.Tool, error) {
	return smoltools.NewBaseTool(
		"list_directory",
		"List the entries of a workspace directory.",
		map[string]smoltools.InputProperty{
			"path": {Type: "string", Description: "Directory to list, relative to the workspace root. Use . for the root itself."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return nil, err
			}
			rel, abs, err := resolvePath(root, path)
			if err != nil {
				return nil, err
			}
			entries, err := os.ReadDir(abs)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", rel, err)
			}
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() {
					name += "/"
				}
				names = append(names, name)
			}
			sort.Strings(names)
			if len(names) == 0 {
				return fmt.Sprintf("%s is empty", rel), nil
			}
			return truncateOutput(strings.Join(names, "\n"), maxToolOutputBytes), nil
		},
	)
}
