package runner

import (
	"fmt"

	"deepsearch/internal/agent"
	"deepsearch/internal/openrouter"
	"deepsearch/internal/ratelimit"
	"deepsearch/internal/spec"
	"deepsearch/internal/tools"

	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

// BuildSolver assembles the full agent stack from configuration: the
// OpenRouter client with request pacing, the research tool set, and the
// smolagents adapter.
func BuildSolver(cfg spec.Config, root, apiKey string, sink agent.Sink, confirmer agent.Confirmer) (agent.Solver, error) {
	client, err := openrouter.New(apiKey, cfg.LLM.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	client.Limiter = ratelimit.Build(cfg.Limiter)

	if root == "" {
		root = "."
	}

	var onReportToken func(string)
	if sink != nil {
		onReportToken = sink.Token
	}

	searchTool, err := smoltools.NewDuckDuckGoSearchTool()
	if err != nil {
		return nil, fmt.Errorf("build web_search tool: %w", err)
	}
	htmlTool, err := tools.NewReadHTMLTool(nil)
	if err != nil {
		return nil, fmt.Errorf("build read_html tool: %w", err)
	}
	readTool, err := tools.NewReadFileTool(root)
	if err != nil {
		return nil, fmt.Errorf("build read_file tool: %w", err)
	}
	writeTool, err := tools.NewWriteFileTool(root)
	if err != nil {
		return nil, fmt.Errorf("build write_file tool: %w", err)
	}
	listTool, err := tools.NewListDirectoryTool(root)
	if err != nil {
		return nil, fmt.Errorf("build list_directory tool: %w", err)
	}
	writerTool, err := tools.NewReportWriterTool(client, cfg.LLM.ReportModel, onReportToken)
	if err != nil {
		return nil, fmt.Errorf("build report_writer tool: %w", err)
	}

	return &agent.SmolSolver{
		Client: client,
		Model:  cfg.LLM.Model,
		Tools: []smoltools.Tool{
			searchTool,
			htmlTool,
			readTool,
			writeTool,
			listTool,
			writerTool,
		},
		Sink:      sink,
		Confirmer: confirmer,
	}, nil
}
