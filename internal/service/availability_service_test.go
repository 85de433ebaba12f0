package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2025, month, day, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	accounts     *memAccounts
	bookings     *memBookings
	reservations *memReservations
	availability *memAvailability
	notes        *memNotes

	availabilitySvc *AvailabilityService
	bookingSvc      *BookingService
}

// newFixture часы стоят на вторнике 1 июля 2025, 08:00 UTC
func newFixture() *fixture {
	f := &fixture{
		accounts:     &memAccounts{},
		bookings:     &memBookings{},
		reservations: &memReservations{},
		availability: &memAvailability{},
		notes:        &memNotes{},
	}

	engine := schedule.NewEngine(schedule.DefaultTemplate(), schedule.OverlapContainment)
	f.availabilitySvc = NewAvailabilityService(engine, f.bookings, f.reservations, f.availability, time.UTC, zap.NewNop())
	f.bookingSvc = NewBookingService(f.availabilitySvc, f.bookings, f.accounts, 28, zap.NewNop())
	f.setNow(at(time.July, 1, 8, 0))

	return f
}

func (f *fixture) setNow(now time.Time) {
	clock := func() time.Time { return now }
	f.availabilitySvc.now = clock
	f.bookingSvc.now = clock
}

// window суббота 10:00-12:00 летом
func (f *fixture) window(instructorID uuid.UUID) {
	f.availability.intervals = append(f.availability.intervals, &model.AvailabilityInterval{
		ID:           uuid.New(),
		InstructorID: instructorID,
		Weekday:      int(time.Saturday),
		InSeason:     true,
		StartHour:    10,
		EndHour:      12,
	})
}

func (f *fixture) booking(owner uuid.UUID, instructor *uuid.UUID, start time.Time, status model.BookingStatus) *model.Booking {
	b := &model.Booking{
		ID:           uuid.New(),
		OwnerID:      owner,
		InstructorID: instructor,
		StartsAt:     start,
		EndsAt:       start.Add(30 * time.Minute),
		Status:       status,
	}
	f.bookings.bookings = append(f.bookings.bookings, b)
	return b
}

func classOf(t *testing.T, slots []schedule.AnnotatedSlot, start time.Time) schedule.AnnotatedSlot {
	t.Helper()
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s
		}
	}
	require.Failf(t, "slot not found", "%s", start)
	return schedule.AnnotatedSlot{}
}

func TestWeek_WithoutInstructorWindows(t *testing.T) {
	f := newFixture()
	me, other := uuid.New(), uuid.New()
	f.booking(other, nil, at(time.July, 5, 10, 15), model.BookingStatusBooked)
	f.booking(me, nil, at(time.July, 5, 11, 0), model.BookingStatusBooked)
	f.booking(other, nil, at(time.July, 5, 12, 30), model.BookingStatusCancelled)
	f.reservations.reservations = append(f.reservations.reservations, &model.RecurringReservation{
		ID: uuid.New(), OwnerID: other, Weekday: int(time.Saturday),
		StartHour: 11, StartMinute: 45, EndHour: 12, EndMinute: 15, IsActive: true,
	})

	slots, err := f.availabilitySvc.Week(context.Background(), model.Session{AccountID: me}, at(time.July, 5, 0, 0), at(time.July, 5, 0, 0))
	require.NoError(t, err)
	require.Len(t, slots, 9)

	assert.Equal(t, schedule.BookedByOther, classOf(t, slots, at(time.July, 5, 10, 15)).Classification)
	assert.Equal(t, schedule.BookedBySelf, classOf(t, slots, at(time.July, 5, 11, 0)).Classification)
	assert.Equal(t, schedule.BookedByOther, classOf(t, slots, at(time.July, 5, 11, 45)).Classification)
	assert.Equal(t, schedule.Available, classOf(t, slots, at(time.July, 5, 12, 30)).Classification)
}

func TestWeek_DropsPastSlots(t *testing.T) {
	f := newFixture()
	f.setNow(at(time.July, 5, 11, 30))

	slots, err := f.availabilitySvc.Week(context.Background(), model.Session{AccountID: uuid.New()}, at(time.July, 5, 0, 0), at(time.July, 5, 0, 0))
	require.NoError(t, err)

	require.Len(t, slots, 7)
	assert.Equal(t, at(time.July, 5, 11, 45), slots[0].Start)
}

func TestWeek_WithInstructorWindows(t *testing.T) {
	f := newFixture()
	i1 := uuid.New()
	f.window(i1)

	slots, err := f.availabilitySvc.Week(context.Background(), model.Session{AccountID: uuid.New()}, at(time.July, 5, 0, 0), at(time.July, 5, 0, 0))
	require.NoError(t, err)

	open := classOf(t, slots, at(time.July, 5, 10, 15))
	assert.Equal(t, schedule.Available, open.Classification)
	assert.Equal(t, []uuid.UUID{i1}, open.AvailableInstructors)
	assert.Equal(t, schedule.Unavailable, classOf(t, slots, at(time.July, 5, 14, 0)).Classification)
}

func TestOpenLessons(t *testing.T) {
	f := newFixture()
	i1, i2 := uuid.New(), uuid.New()
	f.window(i1)
	f.window(i2)
	f.booking(uuid.New(), &i1, at(time.July, 5, 10, 15), model.BookingStatusBooked)

	slots, err := f.availabilitySvc.OpenLessons(context.Background(), at(time.July, 5, 0, 0), at(time.July, 6, 0, 0))
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, []uuid.UUID{i2}, slots[0].AvailableInstructors)
	assert.Equal(t, []uuid.UUID{i1, i2}, slots[1].AvailableInstructors)
}

func TestOpenLessons_ReservationWithoutInstructor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	i1 := uuid.New()
	f.window(i1)
	f.reservations.reservations = append(f.reservations.reservations, &model.RecurringReservation{
		ID: uuid.New(), OwnerID: uuid.New(), Weekday: int(time.Saturday),
		StartHour: 10, StartMinute: 15, EndHour: 10, EndMinute: 45, IsActive: true,
	})
	reserved := at(time.July, 5, 10, 15)

	week, err := f.availabilitySvc.Week(ctx, model.Session{AccountID: uuid.New()}, reserved, reserved)
	require.NoError(t, err)
	assert.Equal(t, schedule.BookedByOther, classOf(t, week, reserved).Classification)

	open, err := f.availabilitySvc.OpenLessons(ctx, reserved, reserved)
	require.NoError(t, err)
	for _, slot := range open {
		assert.False(t, slot.Start.Equal(reserved), "reserved slot listed as open")
	}
	assert.Len(t, open, 2)

	session, child := f.parentWithChild("Аня")
	_, err = f.bookingSvc.Book(ctx, session, &child.ID, reserved)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestDayRule(t *testing.T) {
	f := newFixture()

	assert.True(t, f.availabilitySvc.DayRule(at(time.July, 7, 18, 0)).Active)
	assert.False(t, f.availabilitySvc.DayRule(at(time.November, 3, 9, 0)).Active)
}

func TestDisplayStatus(t *testing.T) {
	assert.Equal(t, "available", DisplayStatus(schedule.Available, model.RoleParent))
	assert.Equal(t, "booked", DisplayStatus(schedule.BookedBySelf, model.RoleParent))
	assert.Equal(t, "unavailable", DisplayStatus(schedule.BookedByOther, model.RoleParent))
	assert.Equal(t, "reserved", DisplayStatus(schedule.BookedByOther, model.RoleInstructor))
	assert.Equal(t, "reserved", DisplayStatus(schedule.BookedByOther, model.RoleAdmin))
	assert.Equal(t, "unavailable", DisplayStatus(schedule.Unavailable, model.RoleAdmin))
}
