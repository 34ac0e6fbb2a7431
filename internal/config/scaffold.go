package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigTemplate = `version: 1

search:
  output_dir: %q
  max_iterations: 10
  min_words: 2000
  # auto allocates report_001.md, report_002.md, ...; fixed always
  # writes report.md.
  report_naming: auto

llm:
  provider: openrouter
  model: "openai/gpt-4o-mini"
  # report_model defaults to llm.model when omitted.
  # report_model: "openai/gpt-4o-mini"

limiter:
  # 0 disables request pacing.
  requests_per_minute: 0

history:
  enabled: false
  db_path: ".deepsearch/history.duckdb"

serve:
  addr: ":8080"
`

func Scaffold(configPath, outputDir string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(defaultConfigTemplate, outputDir)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
