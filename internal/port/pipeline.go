package port

import (
	"context"

	"tabsplit/internal/domain"
)

// ExtractInput carries one image source for receipt extraction. Exactly one
// of ImageURL and Base64Image is set; the service layer enforces this before
// any model call.
type ExtractInput struct {
	ImageURL    string
	Base64Image string
	Headers     map[string]string // broker billing headers for this call
}

// ExtractOutput is the structured receipt plus the raw model response needed
// for the settlement check.
type ExtractOutput struct {
	Receipt    *domain.Receipt
	Content    string // raw message content, passed to the settlement check
	ResponseID string
	Model      string
}

// ReceiptExtractor turns a receipt image into a structured receipt record.
type ReceiptExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}

// ReasonInput carries one split-computation turn.
type ReasonInput struct {
	Receipt      *domain.Receipt // optional; instructions may carry totals instead
	Instructions string
	Participants []domain.Participant
	PriorPlan    *domain.SplitPlan // optional; turns the call into a refinement
	Headers      map[string]string
}

// ReasonOutput is the decoded split plan plus the raw model response needed
// for the settlement check.
type ReasonOutput struct {
	Plan       *domain.SplitPlan
	Content    string
	ResponseID string
	Model      string
}

// SplitReasoner produces a split plan from a receipt, free-text instructions,
// and an optional prior plan.
type SplitReasoner interface {
	ComputeSplit(ctx context.Context, input ReasonInput) (*ReasonOutput, error)
}
