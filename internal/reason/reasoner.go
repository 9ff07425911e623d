// Package reason implements the split reasoner: one text model call that
// apportions a receipt total across named participants per free-text
// instructions, optionally refining a prior plan.
package reason

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

// Reasoner implements port.SplitReasoner over an OpenAI-compatible text
// endpoint.
type Reasoner struct {
	client *llm.Client
}

// NewReasoner creates a split reasoner backed by the given chat client.
func NewReasoner(client *llm.Client) *Reasoner {
	return &Reasoner{client: client}
}

func (r *Reasoner) ComputeSplit(ctx context.Context, input port.ReasonInput) (*port.ReasonOutput, error) {
	messages := []llm.Message{
		{Role: "system", Content: reasonPrompt},
	}

	// Chat-style memory: the prior plan rides along as an assistant turn so
	// the model amends it instead of recomputing from scratch.
	if input.PriorPlan != nil {
		prior, err := json.Marshal(input.PriorPlan)
		if err != nil {
			return nil, fmt.Errorf("marshaling prior plan: %w", err)
		}
		messages = append(messages, llm.Message{Role: "assistant", Content: string(prior)})
	}

	user, err := buildUserContent(input)
	if err != nil {
		return nil, err
	}
	messages = append(messages, llm.Message{Role: "user", Content: user})

	resp, err := r.client.Complete(ctx, llm.Request{
		Messages:    messages,
		Temperature: 0.2,
		JSONMode:    true,
		Headers:     input.Headers,
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, fmt.Errorf("%w: %v", domain.ErrReasoning, err)
		}
		return nil, err
	}

	plan, err := decodePlan(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReasoning, err)
	}

	return &port.ReasonOutput{
		Plan:       plan,
		Content:    resp.Content,
		ResponseID: resp.ID,
		Model:      resp.Model,
	}, nil
}

func buildUserContent(input port.ReasonInput) (string, error) {
	participants, err := json.Marshal(input.Participants)
	if err != nil {
		return "", fmt.Errorf("marshaling participants: %w", err)
	}

	var b strings.Builder
	b.WriteString(input.Instructions)
	b.WriteString("\nParticipants:")
	b.Write(participants)

	if input.Receipt != nil {
		receipt, err := json.Marshal(input.Receipt)
		if err != nil {
			return "", fmt.Errorf("marshaling receipt: %w", err)
		}
		b.WriteString("\nHere is the parsed receipt data: ")
		b.Write(receipt)
	}
	return b.String(), nil
}

func decodePlan(content string) (*domain.SplitPlan, error) {
	raw := llm.StripCodeFences(content)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("output is not a JSON object: %w", err)
	}
	for _, required := range []string{"summary", "currency", "total", "payer", "participants"} {
		if _, ok := keys[required]; !ok {
			return nil, fmt.Errorf("output missing required key %q", required)
		}
	}

	var plan domain.SplitPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("output does not match split plan schema: %w", err)
	}
	if len(plan.Participants) == 0 {
		return nil, fmt.Errorf("output has no participants")
	}
	if plan.OpenQuestions == nil {
		plan.OpenQuestions = []string{}
	}
	return &plan, nil
}
