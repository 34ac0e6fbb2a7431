package tools

import (
	"context"
	"fmt"

	"deepsearch/internal/openrouter"

	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

// NewReportWriterTool returns an LLM-backed tool the agent delegates
// long-form report writing to. Tokens generated by the secondary model
// stream through onToken as they arrive; onToken may be nil.
func NewReportWriterTool(client *openrouter.Client, model string, onToken func(string)) (smoltools.Tool, error) {
	if client == nil {
		return nil, fmt.Errorf("openrouter client is required")
	}
	return smoltools.NewBaseTool(
		"report_writer",
		"Generate long-form prose with a dedicated writing model. Use this to draft the final report content.",
		map[string]smoltools.InputProperty{
			"prompt": {Type: "string", Description: "Writing instructions, including all source material to draw from."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			promptText, err := stringArg(args, "prompt")
			if err != nil {
				return nil, err
			}
			completion, err := client.Complete(context.Background(), openrouter.Request{
				Model: model,
				Messages: []openrouter.Message{
					{Role: "system", Content: "You are a meticulous research writer. Write well-structured markdown."},
					{Role: "user", Content: promptText},
				},
				OnToken: onToken,
			})
			if err != nil {
				return nil, fmt.Errorf("report writer model: %w", err)
			}
			return completion.Content, nil
		},
	)
}
