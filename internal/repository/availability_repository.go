package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

const availabilitySelect = `
	SELECT a.id, a.instructor_id, a.weekday, a.in_season, a.start_hour, a.start_minute,
	       a.end_hour, a.end_minute, a.created_at, i.name
	FROM availability_intervals a
	JOIN accounts i ON i.id = a.instructor_id
`

// AvailabilityRepository окна работы инструкторов
type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(pool)}
}

// Create добавляет окно
func (r *AvailabilityRepository) Create(ctx context.Context, iv *model.AvailabilityInterval) error {
	query := `
		INSERT INTO availability_intervals
			(instructor_id, weekday, in_season, start_hour, start_minute, end_hour, end_minute)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		iv.InstructorID,
		iv.Weekday,
		iv.InSeason,
		iv.StartHour,
		iv.StartMinute,
		iv.EndHour,
		iv.EndMinute,
	).Scan(&iv.ID, &iv.CreatedAt)

	if err != nil {
		return fmt.Errorf("create availability interval: %w", err)
	}

	return nil
}

// List окна всех инструкторов
func (r *AvailabilityRepository) List(ctx context.Context) ([]*model.AvailabilityInterval, error) {
	query := availabilitySelect + ` ORDER BY a.weekday, a.start_hour, a.start_minute, i.name`
	return r.list(ctx, "list availability", query)
}

// ListByInstructor окна одного инструктора
func (r *AvailabilityRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*model.AvailabilityInterval, error) {
	query := availabilitySelect + `
		WHERE a.instructor_id = $1
		ORDER BY a.in_season DESC, a.weekday, a.start_hour, a.start_minute
	`
	return r.list(ctx, "list availability by instructor", query, instructorID)
}

// Delete удаляет окно инструктора
func (r *AvailabilityRepository) Delete(ctx context.Context, id, instructorID uuid.UUID) error {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM availability_intervals WHERE id = $1 AND instructor_id = $2`, id, instructorID)
	if err != nil {
		return fmt.Errorf("delete availability interval: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete availability interval: %w", ErrNotFound)
	}
	return nil
}

func (r *AvailabilityRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.AvailabilityInterval, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var intervals []*model.AvailabilityInterval
	for rows.Next() {
		var iv model.AvailabilityInterval
		if err := rows.Scan(
			&iv.ID,
			&iv.InstructorID,
			&iv.Weekday,
			&iv.InSeason,
			&iv.StartHour,
			&iv.StartMinute,
			&iv.EndHour,
			&iv.EndMinute,
			&iv.CreatedAt,
			&iv.InstructorName,
		); err != nil {
			return nil, fmt.Errorf("scan availability interval: %w", err)
		}
		intervals = append(intervals, &iv)
	}

	return intervals, rows.Err()
}
