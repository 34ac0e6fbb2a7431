package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deepsearch/internal/openrouter"
)

func TestReportWriterToolStreamsTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "openai/gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		for _, text := range []string{"# Report", "\n\nBody."} {
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
	var streamed strings.Builder
	tool, err := NewReportWriterTool(client, "openai/gpt-4o-mini", func(token string) {
		streamed.WriteString(token)
	})
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{"prompt": "write the report"})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out.(string) != "# Report\n\nBody." {
		t.Fatalf("output = %q", out)
	}
	if streamed.String() != "# Report\n\nBody." {
		t.Fatalf("streamed = %q", streamed.String())
	}
}

func TestReportWriterToolRequiresPrompt(t *testing.T) {
	client, err := openrouter.New("test-key", "http://localhost:0", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	tool, err := NewReportWriterTool(client, "m", nil)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	if _, err := tool.Forward(map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for missing prompt")
	}
}
