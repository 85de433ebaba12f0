package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository/base"
)

// bookingSelect выбирает запись вместе с именами ребёнка и инструктора
const bookingSelect = `
	SELECT b.id, b.owner_id, b.child_id, b.instructor_id, b.starts_at, b.ends_at, b.status,
	       b.skill_group, b.created_at, b.updated_at,
	       COALESCE(c.name, ''), COALESCE(i.name, '')
	FROM bookings b
	LEFT JOIN children c ON c.id = b.child_id
	LEFT JOIN accounts i ON i.id = b.instructor_id
`

type BookingRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewBookingRepository(pool *pgxpool.Pool, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool), logger: logger}
}

// Create сохраняет новую запись на урок
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (owner_id, child_id, instructor_id, starts_at, ends_at, status, skill_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		booking.OwnerID,
		booking.ChildID,
		booking.InstructorID,
		booking.StartsAt,
		booking.EndsAt,
		booking.Status,
		booking.SkillGroup,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create booking: %w", ErrConflict)
		}
		return fmt.Errorf("create booking: %w", err)
	}

	r.logger.Debug("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Time("starts_at", booking.StartsAt))

	return nil
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := scanBooking(r.Pool().QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return booking, nil
}

// ListBetween все записи, пересекающиеся с [from, to), включая отменённые
func (r *BookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query := bookingSelect + `
		WHERE b.starts_at < $2 AND b.ends_at > $1
		ORDER BY b.starts_at
	`
	return r.list(ctx, "list bookings between", query, from, to)
}

// ListByOwners записи указанных владельцев, начинающиеся не раньше from
func (r *BookingRepository) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, from time.Time) ([]*model.Booking, error) {
	query := bookingSelect + `
		WHERE b.owner_id = ANY($1) AND b.starts_at >= $2
		ORDER BY b.starts_at
	`
	return r.list(ctx, "list bookings by owners", query, ownerIDs, from)
}

// ListByInstructor записи инструктора в [from, to)
func (r *BookingRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]*model.Booking, error) {
	query := bookingSelect + `
		WHERE b.instructor_id = $1 AND b.starts_at >= $2 AND b.starts_at < $3
		ORDER BY b.starts_at
	`
	return r.list(ctx, "list bookings by instructor", query, instructorID, from, to)
}

// UpdateStatus меняет статус записи
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update booking status: %w", ErrNotFound)
	}

	return nil
}

// UpdateOutcome фиксирует итог урока: статус и группу, в которой занимался ребёнок
func (r *BookingRepository) UpdateOutcome(ctx context.Context, id uuid.UUID, status model.BookingStatus, skillGroup *string) error {
	query := `
		UPDATE bookings
		SET status = $1, skill_group = COALESCE($2, skill_group), updated_at = now()
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, status, skillGroup, id)
	if err != nil {
		return fmt.Errorf("update booking outcome: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update booking outcome: %w", ErrNotFound)
	}

	return nil
}

func (r *BookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OwnerID,
		&booking.ChildID,
		&booking.InstructorID,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Status,
		&booking.SkillGroup,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.ChildName,
		&booking.InstructorName,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
