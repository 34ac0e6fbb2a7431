package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"deepsearch/internal/event"
	"deepsearch/internal/openrouter"

	"github.com/rizome-dev/smolagentsgo/models"
)

type recordingSink struct {
	events []event.Event
	tokens []string
}

func (r *recordingSink) Event(ev event.Event) {
	r.events = append(r.events, ev)
}

func (r *recordingSink) Token(fragment string) {
	r.tokens = append(r.tokens, fragment)
}

func (r *recordingSink) names() []string {
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Name
	}
	return out
}

func TestAlwaysYesDisplaysAndConsents(t *testing.T) {
	var shown string
	confirmer := AlwaysYes{Notify: func(question string) { shown = question }}
	if !confirmer.Confirm("continue?") {
		t.Fatalf("expected consent")
	}
	if shown != "continue?" {
		t.Fatalf("question not displayed: %q", shown)
	}
}

func TestModelFuncBracketsThinkEventsAndStreamsTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, text := range []string{"I will ", "search."} {
			payload, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{{"delta": map[string]any{"content": text}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, err := openrouter.New("test-key", server.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sink := &recordingSink{}
	solver := &SmolSolver{Client: client, Model: "openai/gpt-4o-mini", Sink: sink}

	chat, err := solver.modelFunc([]models.Message{
		{Role: models.RoleUser, Content: []models.MessageContent{{Type: "text", Text: "hi"}}},
	}, nil)
	if err != nil {
		t.Fatalf("model func: %v", err)
	}
	if chat.Content != "I will search." {
		t.Fatalf("content = %q", chat.Content)
	}
	if chat.Role != models.RoleAssistant {
		t.Fatalf("role = %q", chat.Role)
	}
	names := sink.names()
	if len(names) != 2 || names[0] != "task_think_start" || names[1] != "task_think_end" {
		t.Fatalf("events = %v", names)
	}
	if strings.Join(sink.tokens, "") != "I will search." {
		t.Fatalf("tokens = %v", sink.tokens)
	}
}

func TestModelFuncMapsToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{
				"delta": map[string]any{
					"tool_calls": []map[string]any{{
						"index": 0, "id": "call-1", "type": "function",
						"function": map[string]any{"name": "web_search", "arguments": `{"query":"tides"}`},
					}},
				},
			}},
		})
		fmt.Fprintf(w, "data: %s\n\ndata: [DONE]\n\n", payload)
	}))
	defer server.Close()

	client, err := openrouter.New("test-key", server.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	solver := &SmolSolver{Client: client, Model: "openai/gpt-4o-mini", Sink: &recordingSink{}}
	chat, err := solver.modelFunc([]models.Message{
		{Role: models.RoleUser, Content: []models.MessageContent{{Type: "text", Text: "hi"}}},
	}, nil)
	if err != nil {
		t.Fatalf("model func: %v", err)
	}
	if len(chat.ToolCalls) != 1 {
		t.Fatalf("tool calls = %+v", chat.ToolCalls)
	}
	call := chat.ToolCalls[0]
	if call.Function.Name != "web_search" || call.Function.Arguments != `{"query":"tides"}` {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestSolveRejectsEmptyTask(t *testing.T) {
	client, err := openrouter.New("test-key", "http://localhost:0", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	solver := &SmolSolver{Client: client, Model: "m"}
	if _, err := solver.Solve(t.Context(), "  ", SolveOptions{}); err == nil {
		t.Fatalf("expected error for empty task")
	}
}

func TestFlattenMessagesJoinsTextParts(t *testing.T) {
	out := flattenMessages([]models.Message{
		{
			Role: models.RoleSystem,
			Content: []models.MessageContent{
				{Type: "text", Text: "first"},
				{Type: "text", Text: "second"},
			},
		},
	})
	if len(out) != 1 {
		t.Fatalf("messages = %+v", out)
	}
	if out[0].Role != "system" || out[0].Content != "first\nsecond" {
		t.Fatalf("unexpected message: %+v", out[0])
	}
}

func TestPreviewTruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", previewLimit+50)
	got := preview(long)
	if len(got) != previewLimit+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("preview = %q", got)
	}
	if preview("short") != "short" {
		t.Fatalf("short text should pass through")
	}
}

func TestPreviewCutsOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("x", previewLimit-1) + strings.Repeat("世", 8)
	got := preview(text)
	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("preview = %q", got)
	}
	if len(got) > previewLimit+3 {
		t.Fatalf("preview too long: %d bytes", len(got))
	}
}
