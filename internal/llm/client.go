// Package llm implements the OpenAI-compatible chat completion client used by
// both the vision extractor and the split reasoner.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tabsplit/internal/config"
	"tabsplit/internal/domain"
)

// ErrEmptyCompletion means the endpoint answered 200 but returned no usable
// choice. Callers wrap it into their own schema error.
var ErrEmptyCompletion = errors.New("empty completion from model endpoint")

// Message is one chat turn. Content is either a plain string or a slice of
// content blocks (for image input).
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ImageURLBlock builds an image_url content block.
func ImageURLBlock(url string) map[string]any {
	return map[string]any{
		"type":      "image_url",
		"image_url": map[string]any{"url": url},
	}
}

// TextBlock builds a text content block.
func TextBlock(text string) map[string]any {
	return map[string]any{"type": "text", "text": text}
}

// Request is one chat completion call. JSONMode forces the json_object
// response format supported by the provider endpoints.
type Request struct {
	Messages    []Message
	Temperature float32
	JSONMode    bool
	Headers     map[string]string // broker billing headers
}

// Response is the decoded completion.
type Response struct {
	ID      string
	Model   string
	Content string
}

// Client calls one OpenAI-compatible provider endpoint.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates a chat client for one provider from config.
func NewClient(cfg *config.ModelProviderConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete issues one chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	body := map[string]any{
		"model":       c.model,
		"temperature": req.Temperature,
		"messages":    req.Messages,
	}
	if req.JSONMode {
		body["response_format"] = map[string]any{"type": "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: calling model endpoint: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading model response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: model endpoint status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, truncate(string(respBody), 200))
	}

	var decoded struct {
		ID      string `json:"id"`
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshaling completion response: %w", err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return nil, ErrEmptyCompletion
	}

	model := decoded.Model
	if model == "" {
		model = c.model
	}
	return &Response{
		ID:      decoded.ID,
		Model:   model,
		Content: decoded.Choices[0].Message.Content,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// StripCodeFences removes a markdown code fence wrapping model output. The
// providers are told to emit bare JSON but occasionally fence it anyway.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
