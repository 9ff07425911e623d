package port

import (
	"context"

	"github.com/google/uuid"

	"tabsplit/internal/domain"
)

// SplitTurnRepository persists the audit trail of pipeline turns.
type SplitTurnRepository interface {
	Create(ctx context.Context, turn *domain.SplitTurn) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error)
	List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error)
}
