package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

// AvailabilityService собирает данные из хранилищ и прогоняет их через движок расписания
type AvailabilityService struct {
	engine       *schedule.Engine
	bookings     BookingStore
	reservations ReservationStore
	availability AvailabilityStore
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewAvailabilityService(
	engine *schedule.Engine,
	bookings BookingStore,
	reservations ReservationStore,
	availability AvailabilityStore,
	loc *time.Location,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		engine:       engine,
		bookings:     bookings,
		reservations: reservations,
		availability: availability,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// Location часовой пояс бассейна
func (s *AvailabilityService) Location() *time.Location {
	return s.loc
}

// DayRule расписание на дату
func (s *AvailabilityService) DayRule(date time.Time) schedule.DayRule {
	return s.engine.ResolveDayRule(dayStart(date, s.loc))
}

// Week классифицирует слоты дат [from, to] для вызывающего. Прошедшие слоты отбрасываются.
// Если ни у одного инструктора нет окон, инструкторы не учитываются
func (s *AvailabilityService) Week(ctx context.Context, session model.Session, from, to time.Time) ([]schedule.AnnotatedSlot, error) {
	in, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	annotated := s.engine.Reconcile(in.slots, in.booked, viewerOf(session), in.windows)
	result := s.dropPast(annotated)

	s.logger.Debug("Week computed",
		zap.String("account_id", session.AccountID.String()),
		zap.Time("from", in.from),
		zap.Time("to", in.to),
		zap.Int("slots", len(result)))

	return result, nil
}

// OpenLessons свободные уроки дат [from, to] со списком свободных инструкторов
func (s *AvailabilityService) OpenLessons(ctx context.Context, from, to time.Time) ([]schedule.AnnotatedSlot, error) {
	in, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return s.dropPast(s.engine.ReconcileInstructors(in.slots, in.booked, in.windows)), nil
}

// Lookup слот, начинающийся ровно в start, с точки зрения ёмкости: все записи считаются чужими.
// nil, если такого слота в шаблоне нет
func (s *AvailabilityService) Lookup(ctx context.Context, start time.Time) (*schedule.AnnotatedSlot, error) {
	in, err := s.load(ctx, start, start)
	if err != nil {
		return nil, err
	}

	for _, slot := range s.engine.Reconcile(in.slots, in.booked, schedule.Viewer{}, in.windows) {
		if slot.Start.Equal(start) {
			return &slot, nil
		}
	}

	return nil, nil
}

type reconcileInput struct {
	from, to time.Time
	slots    []schedule.TimeSlot
	booked   []schedule.BookedInterval
	windows  []schedule.InstructorWindow
}

func (s *AvailabilityService) load(ctx context.Context, from, to time.Time) (*reconcileInput, error) {
	in := &reconcileInput{
		from: dayStart(from, s.loc),
		to:   dayStart(to, s.loc),
	}
	rangeEnd := in.to.AddDate(0, 0, 1)

	in.slots = s.engine.GenerateSlots(in.from, in.to)

	bookings, err := s.bookings.ListBetween(ctx, in.from, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	in.booked = bookedIntervals(bookings)

	reservations, err := s.reservations.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	for _, res := range reservations {
		in.booked = append(in.booked, schedule.ExpandRecurring(recurringOf(res), in.from, in.to)...)
	}

	intervals, err := s.availability.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	if len(intervals) > 0 {
		in.windows = make([]schedule.InstructorWindow, 0, len(intervals))
		for _, iv := range intervals {
			in.windows = append(in.windows, windowOf(iv))
		}
	}

	return in, nil
}

func (s *AvailabilityService) dropPast(slots []schedule.AnnotatedSlot) []schedule.AnnotatedSlot {
	now := s.now()
	result := make([]schedule.AnnotatedSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Start.Before(now) {
			continue
		}
		result = append(result, slot)
	}
	return result
}
