package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/popiko/lessons_bot/internal/model"
)

// Интерфейсы хранилищ, которые нужны сервисам. Реализации в internal/repository

type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
	CreateChild(ctx context.Context, child *model.Child) error
	GetChild(ctx context.Context, id uuid.UUID) (*model.Child, error)
	ListLinked(ctx context.Context, parentID uuid.UUID) ([]*model.Child, error)
	UpdateSkill(ctx context.Context, childID uuid.UUID, skillGroup, lastSkill string) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, from time.Time) ([]*model.Booking, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	UpdateOutcome(ctx context.Context, id uuid.UUID, status model.BookingStatus, skillGroup *string) error
}

type ReservationStore interface {
	Create(ctx context.Context, res *model.RecurringReservation) error
	ListActive(ctx context.Context) ([]*model.RecurringReservation, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type AvailabilityStore interface {
	Create(ctx context.Context, iv *model.AvailabilityInterval) error
	List(ctx context.Context) ([]*model.AvailabilityInterval, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*model.AvailabilityInterval, error)
	Delete(ctx context.Context, id, instructorID uuid.UUID) error
}

type NoteStore interface {
	Get(ctx context.Context, childID, instructorID uuid.UUID) (*model.InstructorNote, error)
	Upsert(ctx context.Context, note *model.InstructorNote) error
}

type ChargeStore interface {
	Create(ctx context.Context, charge *model.Charge) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]*model.Charge, error)
}
