package service

import (
	"context"

	"github.com/google/uuid"

	"tabsplit/internal/domain"
	"tabsplit/internal/port"
)

const (
	maxTurnPageSize = 200
	maxExportSize   = 10000
)

// TurnService exposes the audit trail of pipeline turns.
type TurnService interface {
	List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error)
	Export(ctx context.Context, kind *domain.TurnKind) ([]domain.SplitTurn, error)
}

type turnService struct {
	turns port.SplitTurnRepository
}

// NewTurnService creates a new TurnService implementation.
func NewTurnService(turns port.SplitTurnRepository) TurnService {
	return &turnService{turns: turns}
}

func (s *turnService) List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxTurnPageSize {
		limit = 50
	}
	return s.turns.List(ctx, kind, offset, limit)
}

func (s *turnService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error) {
	return s.turns.GetByID(ctx, id)
}

func (s *turnService) Export(ctx context.Context, kind *domain.TurnKind) ([]domain.SplitTurn, error) {
	turns, _, err := s.turns.List(ctx, kind, 0, maxExportSize)
	return turns, err
}
