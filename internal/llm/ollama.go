// Package llm talks to an Ollama-compatible generate endpoint and builds the
// prompts the conversion pipeline sends through it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Generator is the single-call LLM surface the pipeline depends on.
type Generator interface {
	// GenerateJSON asks for a JSON-mode completion (low temperature).
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Generate asks for a plain-text completion (temperature zero).
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the Ollama /api/generate endpoint.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewClient(endpoint, model string) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3:instruct"
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Format  string         `json:"format,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Format:  "json",
		Options: map[string]any{"temperature": 0.1},
	})
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Options: map[string]any{"temperature": 0.0},
	})
}

func (c *Client) generate(ctx context.Context, gr generateRequest) (string, error) {
	b, err := json.Marshal(gr)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var raw generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return raw.Response, nil
}

// Ping reports whether the endpoint looks reachable. Best effort only.
func (c *Client) Ping(ctx context.Context) bool {
	body, _ := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  `Say nothing else—just the JSON.`,
		System:  `Return ONLY valid JSON: {"ok":true}`,
		Format:  "json",
		Options: map[string]any{"temperature": 0.2},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if resp != nil {
		resp.Body.Close()
	}
	return err == nil && resp.StatusCode < 500
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string { return c.endpoint }
