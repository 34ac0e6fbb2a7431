package config

import (
	"fmt"
	"strings"

	"deepsearch/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Search.OutputDir) == "" {
		add("search.output_dir", "is required")
	}
	if cfg.Search.MaxIterations <= 0 {
		add("search.max_iterations", "must be > 0")
	}
	if cfg.Search.MinWords <= 0 {
		add("search.min_words", "must be > 0")
	}
	switch cfg.Search.ReportNaming {
	case ReportNamingAuto, ReportNamingFixed:
	default:
		add("search.report_naming", fmt.Sprintf("must be %q or %q", ReportNamingAuto, ReportNamingFixed))
	}

	if cfg.LLM.Provider != DefaultProvider {
		add("llm.provider", fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider))
	}
	if strings.TrimSpace(cfg.LLM.Model) == "" {
		add("llm.model", "is required")
	}
	if strings.TrimSpace(cfg.LLM.BaseURL) == "" {
		add("llm.base_url", "is required")
	}

	if cfg.Limiter.RequestsPerMinute < 0 {
		add("limiter.requests_per_minute", "must be >= 0")
	}

	if cfg.History.Enabled && strings.TrimSpace(cfg.History.DBPath) == "" {
		add("history.db_path", "is required when history is enabled")
	}

	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		add("serve.addr", "is required")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
