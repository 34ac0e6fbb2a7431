// Package openrouter is a streaming chat-completions client for the
// OpenRouter API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultBaseURL is the default OpenRouter API base URL.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// EnvAPIKey names the environment variable holding the API key.
const EnvAPIKey = "OPENROUTER_API_KEY"

// HTTPDoer abstracts HTTP clients used by the client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Limiter paces outgoing requests. Acquire blocks until a request slot
// is available or the context is done.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Client calls the OpenRouter chat-completions endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    HTTPDoer
	Limiter Limiter
}

// APIKeyFromEnv returns the configured API key, or an error naming the
// missing variable. Front-ends call this before any other work.
func APIKeyFromEnv() (string, error) {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return "", fmt.Errorf("%s is not set", EnvAPIKey)
	}
	return key, nil
}

// New constructs a client with explicit settings.
func New(apiKey, baseURL string, httpClient HTTPDoer) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
	}, nil
}

// Message is a chat message in the completions request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolDef describes a callable tool advertised to the model.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is a completed tool invocation request from the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Request is a single streaming completion request.
type Request struct {
	Model    string
	Messages []Message
	Tools    []ToolDef
	Stop     []string
	// OnToken receives each content fragment as it arrives, in order.
	OnToken func(token string)
}

// Completion is the fully assembled model response.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

type apiRequest struct {
	Model      string    `json:"model"`
	Stream     bool      `json:"stream"`
	Messages   []Message `json:"messages"`
	Tools      []apiTool `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
	Stop       []string  `json:"stop,omitempty"`
}

type apiTool struct {
	Type     string      `json:"type"`
	Function apiFunction `json:"function"`
}

type apiFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Complete sends a streaming completion request and assembles the full
// response, delivering content fragments to req.OnToken as they arrive.
func (c *Client) Complete(ctx context.Context, req Request) (Completion, error) {
	if strings.TrimSpace(req.Model) == "" {
		return Completion{}, fmt.Errorf("model is required")
	}
	if c.Limiter != nil {
		if err := c.Limiter.Acquire(ctx); err != nil {
			return Completion{}, fmt.Errorf("acquire request slot: %w", err)
		}
	}

	body := apiRequest{
		Model:    req.Model,
		Stream:   true,
		Messages: req.Messages,
		Stop:     req.Stop,
	}
	if len(req.Tools) > 0 {
		body.Tools = make([]apiTool, 0, len(req.Tools))
		for _, tool := range req.Tools {
			body.Tools = append(body.Tools, apiTool{
				Type: "function",
				Function: apiFunction{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters,
				},
			})
		}
		body.ToolChoice = "auto"
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Completion{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return Completion{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return Completion{}, fmt.Errorf("openrouter error: %s", strings.TrimSpace(string(errBody)))
	}

	return parseStream(resp.Body, req.OnToken)
}
