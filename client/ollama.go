// Package client talks to the Ollama backend that executes prompt test
// runs. Success classification happens here, at the interface boundary;
// downstream consumers (including the celebration engine) only see the
// resulting boolean.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is a thin HTTP client over the Ollama generate API
type Client struct {
	endpoint string
	model    string
	http     *http.Client
	log      *zap.Logger
}

// RunResult is one classified prompt test run
type RunResult struct {
	Success  bool
	Response string
	Model    string
	Duration time.Duration
}

// New creates a client for the given Ollama endpoint and model
func New(endpoint, model string, log *zap.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// TestPrompt executes one run of the system prompt against user input.
// A run is a success when the model completes and produces a non-empty
// response; transport and status errors are returned as errors, not as
// failed classifications.
func (c *Client) TestPrompt(ctx context.Context, systemPrompt, userInput string) (RunResult, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		System: systemPrompt,
		Prompt: userInput,
		Stream: false,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return RunResult{}, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return RunResult{}, fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RunResult{}, fmt.Errorf("generate request: unexpected status %d", resp.StatusCode)
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return RunResult{}, fmt.Errorf("decode generate response: %w", err)
	}

	result := RunResult{
		Success:  gen.Done && strings.TrimSpace(gen.Response) != "",
		Response: gen.Response,
		Model:    c.model,
		Duration: time.Since(start),
	}
	if !result.Success {
		c.log.Warn("prompt test run classified as failure",
			zap.Bool("done", gen.Done),
			zap.Int("response_len", len(gen.Response)))
	}
	return result, nil
}

// Health reports whether the backend answers its tags endpoint
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
