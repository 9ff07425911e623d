package domain

import "errors"

var (
	// ErrInvalidInput covers malformed caller input. Never retried, never
	// reaches the model.
	ErrInvalidInput = errors.New("invalid input")

	ErrMissingImageSource   = errors.New("either imageUrl or base64Image is required")
	ErrConflictingImage     = errors.New("imageUrl and base64Image are mutually exclusive")
	ErrEmptyInstructions    = errors.New("instructions must be a non-empty string")
	ErrEmptyParticipants    = errors.New("participants must be a non-empty array")
	ErrDuplicateParticipant = errors.New("participant identifiers must be unique")

	// ErrExtraction means the vision model produced output that does not
	// conform to the receipt schema. Safe to retry the same call.
	ErrExtraction = errors.New("receipt extraction produced non-conforming output")

	// ErrReasoning means the reasoning model produced output that does not
	// conform to the split plan schema. Safe to retry the same call.
	ErrReasoning = errors.New("split reasoning produced non-conforming output")

	// ErrUpstreamUnavailable covers network, provider, and funding failures
	// on the inference or broker path.
	ErrUpstreamUnavailable = errors.New("inference upstream unavailable")

	// ErrInvariantViolation means a decoded plan's owed amounts do not sum to
	// its total within tolerance. Surfaced distinctly so callers can decide
	// whether to re-prompt.
	ErrInvariantViolation = errors.New("split plan owes do not sum to total")

	ErrUnauthorized = errors.New("unauthorized")
	ErrTurnNotFound = errors.New("turn not found")
)
