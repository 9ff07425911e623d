package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// ReceiptItem is a single line item extracted from a receipt.
type ReceiptItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Receipt is the structured representation of a parsed receipt image.
// Monetary fields are pointers: the vision model returns null for anything
// it cannot read off the receipt.
type Receipt struct {
	Currency *string       `json:"currency"`
	Total    *float64      `json:"total"`
	Subtotal *float64      `json:"subtotal"`
	Tax      *float64      `json:"tax"`
	Tip      *float64      `json:"tip"`
	Items    []ReceiptItem `json:"items"`
}

// Participant is one member of a split as supplied by the caller. Paid is the
// amount they actually contributed toward the bill; Owes is an optional seed
// hint and is not authoritative. The first participant in the list is the
// primary payer by convention unless the instructions say otherwise.
type Participant struct {
	Identifier string   `json:"identifier"`
	Paid       float64  `json:"paid"`
	Owes       *float64 `json:"owes,omitempty"`
}

// ParticipantShare is one participant's allocation within a SplitPlan.
type ParticipantShare struct {
	Identifier string  `json:"identifier"`
	Paid       float64 `json:"paid"`
	Owes       float64 `json:"owes"`
	Comment    string  `json:"comment"`
}

// SplitPlan is the computed allocation of a receipt total across participants.
// Plans are immutable once returned; a refinement turn produces a new plan
// that stays consistent with the prior one.
type SplitPlan struct {
	Summary       string             `json:"summary"`
	Currency      string             `json:"currency"`
	Total         float64            `json:"total"`
	Payer         string             `json:"payer"`
	Participants  []ParticipantShare `json:"participants"`
	OpenQuestions []string           `json:"openQuestions"`
}

// OwesSum returns the sum of all participants' owed amounts.
func (p *SplitPlan) OwesSum() float64 {
	var sum float64
	for i := range p.Participants {
		sum += p.Participants[i].Owes
	}
	return sum
}

// ResponseMetadata is attached to every extractor or reasoner result. IsValid
// carries the settlement check outcome; it is advisory and never affects the
// numeric content of the result.
type ResponseMetadata struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
	IsValid  bool   `json:"isValid"`
	ChatID   string `json:"chatId"`
}

// TurnKind discriminates audit records of pipeline turns.
type TurnKind string

const (
	TurnKindParse TurnKind = "parse"
	TurnKindSplit TurnKind = "split"
)

// SplitTurn is the persisted audit record of one pipeline turn. The pipeline
// itself is stateless; these rows exist for audit and reporting only.
type SplitTurn struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	Kind       TurnKind        `db:"kind" json:"kind"`
	ChatID     string          `db:"chat_id" json:"chat_id"`
	Model      string          `db:"model" json:"model"`
	Provider   string          `db:"provider" json:"provider"`
	IsValid    bool            `db:"is_valid" json:"is_valid"`
	Payload    json.RawMessage `db:"payload" json:"payload"`
	Refinement bool            `db:"refinement" json:"refinement"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// SumTolerance is the maximum allowed drift between a plan's total and the
// sum of its owed amounts, in the settlement currency's smallest displayed unit.
const SumTolerance = 0.01

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
