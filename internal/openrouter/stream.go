package openrouter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// streamChunk is a partial SSE payload.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

// streamChoice contains a delta event from OpenRouter.
type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason"`
}

// streamDelta contains incremental content or tool calls.
type streamDelta struct {
	Content   string           `json:"content"`
	ToolCalls []streamToolCall `json:"tool_calls"`
}

// streamToolCall represents a streaming tool call delta.
type streamToolCall struct {
	Index    int            `json:"index"`
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Function streamFunction `json:"function"`
}

type streamFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// toolCallAccumulator gathers streaming tool call fragments.
type toolCallAccumulator struct {
	ID        string
	Name      string
	Arguments strings.Builder
}

// parseStream reads SSE output, delivering content deltas to onToken as
// they arrive, and assembles the final completion.
func parseStream(reader io.Reader, onToken func(string)) (Completion, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var content strings.Builder
	accumulators := make(map[int]*toolCallAccumulator)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return Completion{}, fmt.Errorf("parse stream chunk: %w", err)
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
				if onToken != nil {
					onToken(choice.Delta.Content)
				}
			}
			for _, call := range choice.Delta.ToolCalls {
				acc := accumulators[call.Index]
				if acc == nil {
					acc = &toolCallAccumulator{}
					accumulators[call.Index] = acc
				}
				if call.ID != "" {
					acc.ID = call.ID
				}
				if call.Function.Name != "" {
					acc.Name = call.Function.Name
				}
				if call.Function.Arguments != "" {
					acc.Arguments.WriteString(call.Function.Arguments)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Completion{}, err
	}

	out := Completion{Content: content.String()}
	if len(accumulators) > 0 {
		indices := make([]int, 0, len(accumulators))
		for index := range accumulators {
			indices = append(indices, index)
		}
		sort.Ints(indices)
		for _, index := range indices {
			acc := accumulators[index]
			callID := acc.ID
			if callID == "" {
				callID = fmt.Sprintf("call-%d", index)
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        callID,
				Name:      acc.Name,
				Arguments: acc.Arguments.String(),
			})
		}
	}
	return out, nil
}
