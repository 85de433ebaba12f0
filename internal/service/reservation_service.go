package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
)

// ReservationService постоянные брони, управляет ими администратор
type ReservationService struct {
	reservations ReservationStore
	logger       *zap.Logger
}

func NewReservationService(reservations ReservationStore, logger *zap.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, logger: logger}
}

// Create добавляет еженедельную бронь
func (s *ReservationService) Create(ctx context.Context, session model.Session, res *model.RecurringReservation) error {
	if session.Role != model.RoleAdmin {
		return ErrForbidden
	}
	if err := validateReservation(res); err != nil {
		return err
	}

	res.IsActive = true
	if err := s.reservations.Create(ctx, res); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	s.logger.Info("Recurring reservation created",
		zap.String("reservation_id", res.ID.String()),
		zap.String("owner_id", res.OwnerID.String()),
		zap.Int("weekday", res.Weekday))

	return nil
}

// Deactivate выключает бронь
func (s *ReservationService) Deactivate(ctx context.Context, session model.Session, id uuid.UUID) error {
	if session.Role != model.RoleAdmin {
		return ErrForbidden
	}
	if err := s.reservations.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate reservation: %w", err)
	}

	s.logger.Info("Recurring reservation deactivated", zap.String("reservation_id", id.String()))
	return nil
}

// List действующие брони, видны только персоналу
func (s *ReservationService) List(ctx context.Context, session model.Session) ([]*model.RecurringReservation, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}
	reservations, err := s.reservations.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func validateReservation(res *model.RecurringReservation) error {
	if res.Weekday < 0 || res.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range: %w", res.Weekday, ErrInvalidInput)
	}
	if !validClock(res.StartHour, res.StartMinute) || !validClock(res.EndHour, res.EndMinute) {
		return fmt.Errorf("bad reservation time: %w", ErrInvalidInput)
	}
	if res.EndHour*60+res.EndMinute <= res.StartHour*60+res.StartMinute {
		return fmt.Errorf("reservation must end after it starts: %w", ErrInvalidInput)
	}
	return nil
}
