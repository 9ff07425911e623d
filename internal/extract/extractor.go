// Package extract implements the receipt extractor: one vision model call
// that turns a receipt image into a structured receipt record.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tabsplit/internal/domain"
	"tabsplit/internal/llm"
	"tabsplit/internal/port"
)

// Extractor implements port.ReceiptExtractor over an OpenAI-compatible
// vision endpoint.
type Extractor struct {
	client *llm.Client
}

// NewExtractor creates a receipt extractor backed by the given chat client.
func NewExtractor(client *llm.Client) *Extractor {
	return &Extractor{client: client}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = dataURI(input.Base64Image)
	}

	resp, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: []map[string]any{llm.ImageURLBlock(imageURL)}},
		},
		Temperature: 0,
		JSONMode:    true,
		Headers:     input.Headers,
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
		}
		return nil, err
	}

	receipt, err := decodeReceipt(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	return &port.ExtractOutput{
		Receipt:    receipt,
		Content:    resp.Content,
		ResponseID: resp.ID,
		Model:      resp.Model,
	}, nil
}

// decodeReceipt parses model output against the receipt schema. The model is
// told to emit bare JSON but occasionally wraps it in code fences anyway.
func decodeReceipt(content string) (*domain.Receipt, error) {
	raw := llm.StripCodeFences(content)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("output is not a JSON object: %w", err)
	}
	for _, required := range []string{"currency", "total", "subtotal", "tax", "tip", "items"} {
		if _, ok := keys[required]; !ok {
			return nil, fmt.Errorf("output missing required key %q", required)
		}
	}

	var receipt domain.Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return nil, fmt.Errorf("output does not match receipt schema: %w", err)
	}
	if receipt.Items == nil {
		receipt.Items = []domain.ReceiptItem{}
	}
	return &receipt, nil
}

func dataURI(base64Image string) string {
	if strings.HasPrefix(base64Image, "data:") {
		return base64Image
	}
	return "data:image/jpeg;base64," + base64Image
}
