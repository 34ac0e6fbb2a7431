package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"deepsearch/internal/event"
	"deepsearch/internal/openrouter"
	"deepsearch/internal/tools"

	"github.com/rizome-dev/smolagentsgo/agents"
	smolmemory "github.com/rizome-dev/smolagentsgo/memory"
	"github.com/rizome-dev/smolagentsgo/models"
	smoltools "github.com/rizome-dev/smolagentsgo/tools"
	"github.com/rizome-dev/smolagentsgo/utils"
)

// DefaultMaxIterations caps reasoning steps when the caller passes none.
const DefaultMaxIterations = 10

const previewLimit = 160

// SmolSolver adapts the smolagents tool-calling agent to the Solver
// boundary, backed by an OpenRouter model.
type SmolSolver struct {
	Client    *openrouter.Client
	Model     string
	Tools     []smoltools.Tool
	Sink      Sink
	Confirmer Confirmer
	// MemorySoftLimit bounds observed tool output bytes before the
	// watcher reports memory pressure. Zero uses the default.
	MemorySoftLimit int

	mu        sync.Mutex
	ctx       context.Context
	thinkStep int
}

// Solve runs the agent on the task, forwarding lifecycle events and
// streamed tokens to the sink as they happen.
func (s *SmolSolver) Solve(ctx context.Context, task string, opts SolveOptions) (string, error) {
	if s.Client == nil {
		return "", fmt.Errorf("openrouter client is required")
	}
	if strings.TrimSpace(task) == "" {
		return "", fmt.Errorf("task is required")
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if s.Confirmer != nil && !s.Confirmer.Confirm("Proceed with the research mission?") {
		return "", fmt.Errorf("mission not confirmed")
	}

	s.setContext(ctx)
	defer s.setContext(nil)

	watcher := newMemoryWatcher(s.MemorySoftLimit, s.emit)
	wrapped := make([]smoltools.Tool, len(s.Tools))
	for i, tool := range s.Tools {
		wrapped[i] = tools.Instrument(tool, s.toolHooks())
	}

	runner, err := agents.NewToolCallingAgent(
		wrapped,
		s.modelFunc,
		agents.PromptTemplates{},
		0,
		opts.MaxIterations,
		nil,
		nil,
		nil,
		"deepsearch",
		"Autonomous multi-source research agent.",
		false,
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("construct agent: %w", err)
	}

	result, err := runner.Run(task, opts.Streaming, true, nil, nil, opts.MaxIterations)
	if err != nil {
		return "", fmt.Errorf("run agent: %w", err)
	}

	if !opts.Streaming {
		answer := stringify(result)
		s.emit("task_complete", event.Mapping("answer_preview", preview(answer)))
		watcher.summarize()
		return answer, nil
	}

	steps, ok := result.(chan smolmemory.MemoryStep)
	if !ok {
		return "", fmt.Errorf("unexpected streaming result type %T", result)
	}
	var answer string
	for step := range steps {
		switch st := step.(type) {
		case *smolmemory.ActionStep:
			var maxErr *utils.AgentMaxStepsError
			if st.Error != nil && errors.As(st.Error, &maxErr) {
				s.emit("error_max_iterations_reached", event.Mapping(
					"max_iterations", opts.MaxIterations,
				))
			}
			watcher.observe(len(st.Observations), len(st.ToolCalls))
		case *smolmemory.FinalAnswerStep:
			answer = stringify(st.FinalAnswer)
			s.emit("task_complete", event.Mapping("answer_preview", preview(answer)))
		}
	}
	watcher.summarize()
	return answer, nil
}

// modelFunc is the agent's model backend: one streaming OpenRouter call
// per reasoning step, bracketed by think events.
func (s *SmolSolver) modelFunc(messages []models.Message, stopSequences []string) (*models.ChatMessage, error) {
	step := s.nextThinkStep()
	s.emit("task_think_start", event.Mapping("step", step))

	completion, err := s.Client.Complete(s.context(), openrouter.Request{
		Model:    s.Model,
		Messages: flattenMessages(messages),
		Stop:     stopSequences,
		OnToken:  s.token,
	})
	if err != nil {
		return nil, err
	}

	s.emit("task_think_end", event.Mapping(
		"step", step,
		"output_preview", preview(completion.Content),
		"tool_calls", len(completion.ToolCalls),
	))

	chat := &models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: completion.Content,
	}
	for _, call := range completion.ToolCalls {
		chat.ToolCalls = append(chat.ToolCalls, models.ChatMessageToolCall{
			ID:   call.ID,
			Type: "function",
			Function: models.ChatMessageToolCallDefinition{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return chat, nil
}

func (s *SmolSolver) toolHooks() tools.Hooks {
	return tools.Hooks{
		OnStart: func(name string, args map[string]interface{}) {
			s.emit("tool_execution_start", event.Mapping(
				"tool", name,
				"arguments", argsValue(args),
			))
		},
		OnEnd: func(name string, args map[string]interface{}, output interface{}, duration time.Duration, err error) {
			data := []any{
				"tool", name,
				"duration_ms", int(duration.Milliseconds()),
			}
			if err != nil {
				data = append(data, "error", err.Error())
			} else {
				data = append(data, "output_preview", preview(stringify(output)))
			}
			s.emit("tool_execution_end", event.Mapping(data...))
		},
	}
}

func (s *SmolSolver) emit(name string, data any) {
	if s.Sink == nil {
		return
	}
	s.Sink.Event(event.New(name, data))
}

func (s *SmolSolver) token(fragment string) {
	if s.Sink == nil {
		return
	}
	s.Sink.Token(fragment)
}

func (s *SmolSolver) setContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	if ctx != nil {
		s.thinkStep = 0
	}
}

func (s *SmolSolver) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *SmolSolver) nextThinkStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinkStep++
	return s.thinkStep
}

// flattenMessages reduces multi-part message content to plain text.
func flattenMessages(messages []models.Message) []openrouter.Message {
	out := make([]openrouter.Message, 0, len(messages))
	for _, msg := range messages {
		var parts []string
		for _, content := range msg.Content {
			if content.Text != "" {
				parts = append(parts, content.Text)
			}
		}
		out = append(out, openrouter.Message{
			Role:    string(msg.Role),
			Content: strings.Join(parts, "\n"),
		})
	}
	return out
}

// argsValue turns tool arguments into an event payload mapping.
func argsValue(args map[string]interface{}) event.Value {
	converted := make(map[string]any, len(args))
	for k, v := range args {
		converted[k] = v
	}
	return event.FromAny(converted)
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= previewLimit {
		return text
	}
	// Back up so the cut never splits a multi-byte rune.
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
