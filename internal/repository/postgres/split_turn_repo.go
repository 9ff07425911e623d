package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tabsplit/internal/domain"
	"tabsplit/internal/port"
)

type splitTurnRepo struct {
	db *sqlx.DB
}

// NewSplitTurnRepo creates a new PostgreSQL-backed SplitTurnRepository.
func NewSplitTurnRepo(db *sqlx.DB) port.SplitTurnRepository {
	return &splitTurnRepo{db: db}
}

func (r *splitTurnRepo) Create(ctx context.Context, turn *domain.SplitTurn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO split_turns (id, kind, chat_id, model, provider, is_valid, payload, refinement, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		turn.ID, turn.Kind, turn.ChatID, turn.Model, turn.Provider, turn.IsValid,
		turn.Payload, turn.Refinement, turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("splitTurnRepo.Create: %w", err)
	}
	return nil
}

func (r *splitTurnRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error) {
	var turn domain.SplitTurn
	err := r.db.GetContext(ctx, &turn,
		`SELECT * FROM split_turns WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTurnNotFound
		}
		return nil, fmt.Errorf("splitTurnRepo.GetByID: %w", err)
	}
	return &turn, nil
}

func (r *splitTurnRepo) List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error) {
	where := ""
	args := []any{}
	if kind != nil {
		where = " WHERE kind = $1"
		args = append(args, *kind)
	}

	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM split_turns`+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("splitTurnRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT * FROM split_turns%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var turns []domain.SplitTurn
	err = r.db.SelectContext(ctx, &turns, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("splitTurnRepo.List: %w", err)
	}
	return turns, total, nil
}
