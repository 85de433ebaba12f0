package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository"
	"github.com/popiko/lessons_bot/internal/schedule"
)

// slotLocator поиск слота по времени начала, реализован AvailabilityService
type slotLocator interface {
	Lookup(ctx context.Context, start time.Time) (*schedule.AnnotatedSlot, error)
}

type BookingService struct {
	slots       slotLocator
	bookings    BookingStore
	accounts    AccountStore
	horizonDays int
	now         func() time.Time
	logger      *zap.Logger
}

func NewBookingService(
	slots slotLocator,
	bookings BookingStore,
	accounts AccountStore,
	horizonDays int,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:       slots,
		bookings:    bookings,
		accounts:    accounts,
		horizonDays: horizonDays,
		now:         time.Now,
		logger:      logger,
	}
}

// Book записывает ребёнка (или самого родителя, если childID == nil) на слот, начинающийся в start.
// Инструктор назначается первым свободным
func (s *BookingService) Book(ctx context.Context, session model.Session, childID *uuid.UUID, start time.Time) (*model.Booking, error) {
	now := s.now()
	if !start.After(now) {
		return nil, ErrSlotInPast
	}
	if s.horizonDays > 0 && start.After(now.AddDate(0, 0, s.horizonDays)) {
		return nil, fmt.Errorf("beyond booking horizon: %w", ErrSlotUnavailable)
	}

	var child *model.Child
	if childID != nil {
		var err error
		child, err = s.accounts.GetChild(ctx, *childID)
		if err != nil {
			return nil, fmt.Errorf("get child: %w", err)
		}
		if child == nil {
			return nil, ErrChildNotFound
		}
		if child.ParentID != session.AccountID && session.Role != model.RoleAdmin {
			return nil, ErrForbidden
		}
	}

	slot, err := s.slots.Lookup(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("lookup slot: %w", err)
	}
	if slot == nil || slot.Classification != schedule.Available {
		return nil, ErrSlotUnavailable
	}

	if childID != nil {
		busy, err := s.childBusy(ctx, *childID, slot.TimeSlot)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, fmt.Errorf("child already has a lesson at this time: %w", ErrSlotUnavailable)
		}
	}

	booking := &model.Booking{
		OwnerID:  session.AccountID,
		ChildID:  childID,
		StartsAt: slot.Start,
		EndsAt:   slot.End,
		Status:   model.BookingStatusBooked,
	}
	if child != nil {
		booking.ChildName = child.Name
		if child.SkillGroup != "" {
			group := child.SkillGroup
			booking.SkillGroup = &group
		}
	}

	if err := s.create(ctx, booking, slot.AvailableInstructors); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if booking.InstructorID != nil {
		instructor, err := s.accounts.GetByID(ctx, *booking.InstructorID)
		if err != nil {
			s.logger.Warn("Failed to load instructor name", zap.Error(err))
		} else if instructor != nil {
			booking.InstructorName = instructor.Name
		}
	}

	fields := []zap.Field{
		zap.String("booking_id", booking.ID.String()),
		zap.String("owner_id", session.AccountID.String()),
		zap.Time("starts_at", booking.StartsAt),
	}
	if booking.InstructorID != nil {
		fields = append(fields, zap.String("instructor_id", booking.InstructorID.String()))
	}
	s.logger.Info("Lesson booked", fields...)

	return booking, nil
}

// create сохраняет запись на первого свободного инструктора. Если инструктора успели занять
// параллельно, пробует следующего
func (s *BookingService) create(ctx context.Context, booking *model.Booking, instructors []uuid.UUID) error {
	if len(instructors) == 0 {
		return s.bookings.Create(ctx, booking)
	}

	var err error
	for _, id := range instructors {
		instructor := id
		booking.InstructorID = &instructor
		if err = s.bookings.Create(ctx, booking); !errors.Is(err, repository.ErrConflict) {
			return err
		}
		s.logger.Debug("Instructor taken concurrently",
			zap.String("instructor_id", id.String()),
			zap.Time("starts_at", booking.StartsAt))
	}
	booking.InstructorID = nil

	return err
}

func (s *BookingService) childBusy(ctx context.Context, childID uuid.UUID, slot schedule.TimeSlot) (bool, error) {
	existing, err := s.bookings.ListBetween(ctx, slot.Start, slot.End)
	if err != nil {
		return false, fmt.Errorf("list bookings: %w", err)
	}
	for _, b := range existing {
		if b.Status.Occupies() && b.ChildID != nil && *b.ChildID == childID {
			return true, nil
		}
	}
	return false, nil
}

// Cancel отменяет будущую запись. Родитель отменяет свои записи, администратор любые
func (s *BookingService) Cancel(ctx context.Context, session model.Session, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !session.Owns(booking.OwnerID) && session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if !booking.Status.CanTransitionTo(model.BookingStatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if !booking.StartsAt.After(s.now()) {
		return nil, ErrSlotInPast
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	booking.Status = model.BookingStatusCancelled

	s.logger.Info("Lesson cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("by", session.AccountID.String()))

	return booking, nil
}

// OutcomeInput итог урока от инструктора
type OutcomeInput struct {
	Status     model.BookingStatus
	SkillGroup string // группа, в которой ребёнок занимался; пусто, если не изменилась
	LastSkill  string // навык, освоенный на уроке
}

// RecordOutcome фиксирует итог урока. Доступно назначенному инструктору и администратору.
// Для проведённого урока обновляется прогресс ребёнка
func (s *BookingService) RecordOutcome(ctx context.Context, session model.Session, bookingID uuid.UUID, in OutcomeInput) (*model.Booking, error) {
	if !session.Role.IsStaff() {
		return nil, ErrForbidden
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if session.Role != model.RoleAdmin && booking.InstructorID != nil && *booking.InstructorID != session.AccountID {
		return nil, ErrForbidden
	}
	if !booking.Status.CanTransitionTo(in.Status) {
		return nil, ErrInvalidTransition
	}

	var group *string
	if in.SkillGroup != "" {
		group = &in.SkillGroup
	}

	if err := s.bookings.UpdateOutcome(ctx, bookingID, in.Status, group); err != nil {
		return nil, fmt.Errorf("record outcome: %w", err)
	}
	booking.Status = in.Status
	if group != nil {
		booking.SkillGroup = group
	}

	if in.Status == model.BookingStatusCompleted && booking.ChildID != nil && (in.SkillGroup != "" || in.LastSkill != "") {
		if err := s.updateProgress(ctx, *booking.ChildID, in); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Lesson outcome recorded",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(in.Status)),
		zap.String("instructor_id", session.AccountID.String()))

	return booking, nil
}

func (s *BookingService) updateProgress(ctx context.Context, childID uuid.UUID, in OutcomeInput) error {
	child, err := s.accounts.GetChild(ctx, childID)
	if err != nil {
		return fmt.Errorf("get child: %w", err)
	}
	if child == nil {
		return ErrChildNotFound
	}

	group, skill := child.SkillGroup, child.LastObtainedSkill
	if in.SkillGroup != "" {
		group = in.SkillGroup
	}
	if in.LastSkill != "" {
		skill = in.LastSkill
	}

	if err := s.accounts.UpdateSkill(ctx, childID, group, skill); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// Upcoming будущие записи вызывающего и его детей
func (s *BookingService) Upcoming(ctx context.Context, session model.Session) ([]*model.Booking, error) {
	return s.upcoming(ctx, append([]uuid.UUID{session.AccountID}, session.LinkedAccountIDs...))
}

// UpcomingOf будущие записи клиента и его детей, для администратора
func (s *BookingService) UpcomingOf(ctx context.Context, session model.Session, accountID uuid.UUID, childIDs []uuid.UUID) ([]*model.Booking, error) {
	if session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.upcoming(ctx, append([]uuid.UUID{accountID}, childIDs...))
}

func (s *BookingService) upcoming(ctx context.Context, owners []uuid.UUID) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByOwners(ctx, owners, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}

	upcoming := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == model.BookingStatusBooked {
			upcoming = append(upcoming, b)
		}
	}
	return upcoming, nil
}

func (s *BookingService) getBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
