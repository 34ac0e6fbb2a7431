package spec

type Config struct {
	Version int           `yaml:"version"`
	Search  SearchConfig  `yaml:"search"`
	LLM     LLMConfig     `yaml:"llm"`
	Limiter LimiterConfig `yaml:"limiter"`
	History HistoryConfig `yaml:"history"`
	Serve   ServeConfig   `yaml:"serve"`
}

type SearchConfig struct {
	OutputDir     string `yaml:"output_dir"`
	MaxIterations int    `yaml:"max_iterations"`
	MinWords      int    `yaml:"min_words"`
	ReportNaming  string `yaml:"report_naming"`
}

type LLMConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	ReportModel string `yaml:"report_model"`
	BaseURL     string `yaml:"base_url"`
}

type LimiterConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}
