package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tabsplit/internal/domain"
	"tabsplit/internal/metrics"
	"tabsplit/internal/port"
	"tabsplit/internal/validator/split"
)

// ComputeSplitInput is the DTO for one split computation turn. Receipt and
// PriorPlan are optional; a set PriorPlan makes the turn a refinement.
type ComputeSplitInput struct {
	Receipt      *domain.Receipt
	Instructions string
	Participants []domain.Participant
	PriorPlan    *domain.SplitPlan
}

// ComputeSplitResult is the outcome of one split computation turn.
type ComputeSplitResult struct {
	Plan     *domain.SplitPlan
	Metadata domain.ResponseMetadata
}

// SplitService defines the split computation contract.
type SplitService interface {
	ComputeSplit(ctx context.Context, input *ComputeSplitInput) (*ComputeSplitResult, error)
}

type splitService struct {
	broker   port.ComputeBroker
	reasoner port.SplitReasoner
	provider string
	turns    port.SplitTurnRepository // optional
	log      *zap.SugaredLogger
}

// NewSplitService creates a new SplitService implementation. The turn
// repository may be nil.
func NewSplitService(
	broker port.ComputeBroker,
	reasoner port.SplitReasoner,
	provider string,
	turns port.SplitTurnRepository,
	log *zap.SugaredLogger,
) SplitService {
	return &splitService{
		broker:   broker,
		reasoner: reasoner,
		provider: provider,
		turns:    turns,
		log:      log,
	}
}

func (s *splitService) ComputeSplit(ctx context.Context, input *ComputeSplitInput) (*ComputeSplitResult, error) {
	if err := validateSplitInput(input); err != nil {
		return nil, err
	}

	seed, err := querySeed(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	chatID := newChatID()

	headers, err := s.broker.RequestHeaders(ctx, s.provider, seed)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := s.reasoner.ComputeSplit(ctx, port.ReasonInput{
		Receipt:      input.Receipt,
		Instructions: input.Instructions,
		Participants: input.Participants,
		PriorPlan:    input.PriorPlan,
		Headers:      headers,
	})
	if err != nil {
		metrics.InferenceCount.WithLabelValues("", "split", "error").Inc()
		return nil, err
	}
	metrics.InferenceDuration.WithLabelValues(out.Model, "split").Observe(time.Since(start).Seconds())
	metrics.InferenceCount.WithLabelValues(out.Model, "split", "ok").Inc()

	isValid := s.settle(ctx, out.Content, out.ResponseID)

	split.Normalize(out.Plan)
	report := split.Check(out.Plan, input.Participants)
	if err := report.Err(); err != nil {
		return nil, err
	}
	if report.HasWarning {
		for _, r := range report.Results {
			if !r.Passed {
				s.log.Warnw("split plan check failed", "rule", r.RuleKey, "message", r.Message)
			}
		}
	}

	s.recordTurn(ctx, chatID, out, isValid, input.PriorPlan != nil)

	return &ComputeSplitResult{
		Plan: out.Plan,
		Metadata: domain.ResponseMetadata{
			Model:    out.Model,
			Provider: s.provider,
			IsValid:  isValid,
			ChatID:   chatID,
		},
	}, nil
}

func (s *splitService) settle(ctx context.Context, content, responseID string) bool {
	valid, err := s.broker.Settle(ctx, s.provider, content, responseID)
	if err != nil {
		s.log.Warnw("settlement check failed", "provider", s.provider, "error", err)
		metrics.SettlementResults.WithLabelValues(s.provider, "error").Inc()
		return false
	}
	if valid {
		metrics.SettlementResults.WithLabelValues(s.provider, "valid").Inc()
	} else {
		metrics.SettlementResults.WithLabelValues(s.provider, "invalid").Inc()
	}
	return valid
}

func (s *splitService) recordTurn(ctx context.Context, chatID string, out *port.ReasonOutput, isValid, refinement bool) {
	if s.turns == nil {
		return
	}
	raw, err := json.Marshal(out.Plan)
	if err != nil {
		s.log.Warnw("turn record skipped", "error", err)
		return
	}
	turn := &domain.SplitTurn{
		ID:         uuid.New(),
		Kind:       domain.TurnKindSplit,
		ChatID:     chatID,
		Model:      out.Model,
		Provider:   s.provider,
		IsValid:    isValid,
		Payload:    raw,
		Refinement: refinement,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.turns.Create(ctx, turn); err != nil {
		s.log.Warnw("turn record failed", "error", err)
	}
}

// validateSplitInput runs the cheap input checks. They run before any broker
// or model call so malformed requests never spend funds.
func validateSplitInput(input *ComputeSplitInput) error {
	if strings.TrimSpace(input.Instructions) == "" {
		return domain.ErrEmptyInstructions
	}
	if len(input.Participants) == 0 {
		return domain.ErrEmptyParticipants
	}
	seen := make(map[string]bool, len(input.Participants))
	for _, p := range input.Participants {
		id := strings.TrimSpace(p.Identifier)
		if id == "" {
			return fmt.Errorf("%w: participant identifier must be non-empty", domain.ErrInvalidInput)
		}
		if seen[id] {
			return domain.ErrDuplicateParticipant
		}
		seen[id] = true
		if p.Paid < 0 {
			return fmt.Errorf("%w: participant %q has negative paid amount", domain.ErrInvalidInput, id)
		}
	}
	return nil
}

func querySeed(input *ComputeSplitInput) (string, error) {
	parts, err := json.Marshal(input.Participants)
	if err != nil {
		return "", err
	}
	return fingerprint(input.Instructions + string(parts)), nil
}
