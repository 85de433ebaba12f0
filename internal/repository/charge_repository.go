package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

type ChargeRepository struct {
	*base.Repository
}

func NewChargeRepository(pool *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет начисление
func (r *ChargeRepository) Create(ctx context.Context, charge *model.Charge) error {
	query := `
		INSERT INTO charges (account_id, title, charged_on, amount_cents, discount_cents)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		charge.AccountID,
		charge.Title,
		charge.Date,
		charge.AmountCents,
		charge.DiscountCents,
	).Scan(&charge.ID, &charge.CreatedAt)
	if err != nil {
		return fmt.Errorf("create charge: %w", err)
	}

	return nil
}

// ListByAccount начисления аккаунта с датой в [from, to), по дате. Границы в полночь UTC
func (r *ChargeRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]*model.Charge, error) {
	query := `
		SELECT id, account_id, title, charged_on, amount_cents, discount_cents, created_at
		FROM charges
		WHERE account_id = $1 AND charged_on >= $2::date AND charged_on < $3::date
		ORDER BY charged_on, created_at
	`

	rows, err := r.Pool().Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	var charges []*model.Charge
	for rows.Next() {
		var c model.Charge
		if err := rows.Scan(
			&c.ID,
			&c.AccountID,
			&c.Title,
			&c.Date,
			&c.AmountCents,
			&c.DiscountCents,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		charges = append(charges, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charges: %w", err)
	}

	return charges, nil
}
