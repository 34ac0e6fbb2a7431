package config

import "deepsearch/internal/spec"

// Defaults applied to fields the config file leaves unset.
const (
	DefaultProvider      = "openrouter"
	DefaultModel         = "openai/gpt-4o-mini"
	DefaultBaseURL       = "https://openrouter.ai/api/v1"
	DefaultMaxIterations = 10
	DefaultMinWords      = 2000
	DefaultServeAddr     = ":8080"
	DefaultHistoryDB     = ".deepsearch/history.duckdb"

	// ReportNamingAuto allocates report_NNN.md names; ReportNamingFixed
	// always writes report.md.
	ReportNamingAuto  = "auto"
	ReportNamingFixed = "fixed"
)

func Normalize(cfg *spec.Config) {
	if cfg.Search.OutputDir == "" {
		cfg.Search.OutputDir = DefaultOutputDir
	}
	if cfg.Search.MaxIterations == 0 {
		cfg.Search.MaxIterations = DefaultMaxIterations
	}
	if cfg.Search.MinWords == 0 {
		cfg.Search.MinWords = DefaultMinWords
	}
	if cfg.Search.ReportNaming == "" {
		cfg.Search.ReportNaming = ReportNamingAuto
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.ReportModel == "" {
		cfg.LLM.ReportModel = cfg.LLM.Model
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = DefaultBaseURL
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultHistoryDB
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultServeAddr
	}
}
