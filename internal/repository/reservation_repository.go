package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

// ReservationRepository постоянные еженедельные брони
type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет постоянную бронь
func (r *ReservationRepository) Create(ctx context.Context, res *model.RecurringReservation) error {
	query := `
		INSERT INTO recurring_reservations
			(owner_id, child_id, instructor_id, weekday, start_hour, start_minute, end_hour, end_minute, skill_group, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		res.OwnerID,
		res.ChildID,
		res.InstructorID,
		res.Weekday,
		res.StartHour,
		res.StartMinute,
		res.EndHour,
		res.EndMinute,
		res.SkillGroup,
		res.IsActive,
	).Scan(&res.ID, &res.CreatedAt)

	if err != nil {
		return fmt.Errorf("create recurring reservation: %w", err)
	}

	return nil
}

// ListActive все действующие постоянные брони
func (r *ReservationRepository) ListActive(ctx context.Context) ([]*model.RecurringReservation, error) {
	query := `
		SELECT id, owner_id, child_id, instructor_id, weekday, start_hour, start_minute, end_hour, end_minute,
		       skill_group, is_active, created_at
		FROM recurring_reservations
		WHERE is_active = true
		ORDER BY weekday, start_hour, start_minute
	`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*model.RecurringReservation
	for rows.Next() {
		var res model.RecurringReservation
		if err := rows.Scan(
			&res.ID,
			&res.OwnerID,
			&res.ChildID,
			&res.InstructorID,
			&res.Weekday,
			&res.StartHour,
			&res.StartMinute,
			&res.EndHour,
			&res.EndMinute,
			&res.SkillGroup,
			&res.IsActive,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, rows.Err()
}

// Deactivate выключает бронь, история остаётся в таблице
func (r *ReservationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `UPDATE recurring_reservations SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate reservation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("deactivate reservation: %w", ErrNotFound)
	}
	return nil
}
