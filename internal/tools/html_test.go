package tools

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const fixturePage = `<!doctype html>
<html>
<head><title>Tidal Power</title><script>window.x=1</script></head>
<body>
<nav>Home | About</nav>
<h1>Tidal Power</h1>
<p>Tidal power converts energy from tides into electricity.</p>
<ul><li>Predictable output</li><li>High capital cost</li></ul>
<style>p { color: red }</style>
</body>
</html>`

func TestReadHTMLToolExtractsReadableText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fixturePage)
	}))
	defer server.Close()

	tool, err := NewReadHTMLTool(server.Client())
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	out, err := tool.Forward(map[string]interface{}{"url": server.URL})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	text := out.(string)
	for _, want := range []string{
		"Tidal Power",
		"converts energy from tides",
		"Predictable output",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in %q", want, text)
		}
	}
	for _, unwanted := range []string{"window.x", "color: red", "Home | About"} {
		if strings.Contains(text, unwanted) {
			t.Fatalf("unexpected %q in %q", unwanted, text)
		}
	}
}

func TestReadHTMLToolRejectsNonHTTPURL(t *testing.T) {
	tool, err := NewReadHTMLTool(nil)
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	_, err = tool.Forward(map[string]interface{}{"url": "file:///etc/passwd"})
	if err == nil || !strings.Contains(err.Error(), "http") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestReadHTMLToolSurfacesStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	tool, err := NewReadHTMLTool(server.Client())
	if err != nil {
		t.Fatalf("new tool: %v", err)
	}
	_, err = tool.Forward(map[string]interface{}{"url": server.URL + "/missing"})
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}
