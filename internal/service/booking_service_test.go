package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/repository"
)

func (f *fixture) parentWithChild(name string) (model.Session, *model.Child) {
	parent := &model.Account{Role: model.RoleParent, Name: "parent"}
	_ = f.accounts.Create(context.Background(), parent)

	child := &model.Child{ParentID: parent.ID, Name: name, SkillGroup: "starfish"}
	_ = f.accounts.CreateChild(context.Background(), child)

	return model.Session{AccountID: parent.ID, Role: model.RoleParent, LinkedAccountIDs: []uuid.UUID{child.ID}}, child
}

func TestBook_AssignsFirstFreeInstructor(t *testing.T) {
	f := newFixture()
	i1, i2 := uuid.New(), uuid.New()
	f.window(i1)
	f.window(i2)
	ctx := context.Background()
	start := at(time.July, 5, 10, 15)

	anna, annaChild := f.parentWithChild("Аня")
	booking, err := f.bookingSvc.Book(ctx, anna, &annaChild.ID, start)
	require.NoError(t, err)
	require.NotNil(t, booking.InstructorID)
	assert.Equal(t, i1, *booking.InstructorID)
	assert.Equal(t, anna.AccountID, booking.OwnerID)
	assert.Equal(t, start.Add(30*time.Minute), booking.EndsAt)
	assert.Equal(t, model.BookingStatusBooked, booking.Status)
	require.NotNil(t, booking.SkillGroup)
	assert.Equal(t, "starfish", *booking.SkillGroup)

	boris, borisChild := f.parentWithChild("Боря")
	second, err := f.bookingSvc.Book(ctx, boris, &borisChild.ID, start)
	require.NoError(t, err)
	assert.Equal(t, i2, *second.InstructorID)

	vera, veraChild := f.parentWithChild("Вера")
	_, err = f.bookingSvc.Book(ctx, vera, &veraChild.ID, start)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBook_WithoutWindowsTakesWholeSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	start := at(time.July, 5, 10, 15)

	anna, annaChild := f.parentWithChild("Аня")
	booking, err := f.bookingSvc.Book(ctx, anna, &annaChild.ID, start)
	require.NoError(t, err)
	assert.Nil(t, booking.InstructorID)

	boris, borisChild := f.parentWithChild("Боря")
	_, err = f.bookingSvc.Book(ctx, boris, &borisChild.ID, start)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBook_Rejections(t *testing.T) {
	f := newFixture()
	f.window(uuid.New())
	f.window(uuid.New())
	ctx := context.Background()
	session, child := f.parentWithChild("Аня")
	_, stranger := f.parentWithChild("Чужой")
	missing := uuid.New()

	_, err := f.bookingSvc.Book(ctx, session, &child.ID, at(time.June, 28, 10, 15))
	assert.ErrorIs(t, err, ErrSlotInPast)

	_, err = f.bookingSvc.Book(ctx, session, &child.ID, at(time.August, 16, 10, 15))
	assert.ErrorIs(t, err, ErrSlotUnavailable, "beyond horizon")

	_, err = f.bookingSvc.Book(ctx, session, &child.ID, at(time.July, 5, 10, 20))
	assert.ErrorIs(t, err, ErrSlotUnavailable, "not a template slot")

	_, err = f.bookingSvc.Book(ctx, session, &child.ID, at(time.July, 5, 14, 0))
	assert.ErrorIs(t, err, ErrSlotUnavailable, "no instructor works")

	_, err = f.bookingSvc.Book(ctx, session, &stranger.ID, at(time.July, 5, 10, 15))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.bookingSvc.Book(ctx, session, &missing, at(time.July, 5, 10, 15))
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = f.bookingSvc.Book(ctx, session, &child.ID, at(time.July, 5, 10, 15))
	require.NoError(t, err)
	_, err = f.bookingSvc.Book(ctx, session, &child.ID, at(time.July, 5, 10, 15))
	assert.ErrorIs(t, err, ErrSlotUnavailable, "same child twice")
}

func TestBook_StoreConflictMeansUnavailable(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = repository.ErrConflict
	session, child := f.parentWithChild("Аня")

	_, err := f.bookingSvc.Book(context.Background(), session, &child.ID, at(time.July, 5, 10, 15))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBook_ConcurrentUnassignedBookingWins(t *testing.T) {
	f := newFixture()
	start := at(time.July, 5, 10, 15)
	// без окон инструкторов запись соседа хранится без инструктора и ещё не видна чтению
	f.bookings.concurrent = append(f.bookings.concurrent, &model.Booking{
		ID: uuid.New(), OwnerID: uuid.New(), StartsAt: start, EndsAt: start.Add(30 * time.Minute),
		Status: model.BookingStatusBooked,
	})
	session, child := f.parentWithChild("Аня")

	_, err := f.bookingSvc.Book(context.Background(), session, &child.ID, start)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, f.bookings.bookings)
	assert.Equal(t, 1, f.bookings.creates)
}

func TestBook_ConcurrentInstructorTakenFallsBack(t *testing.T) {
	f := newFixture()
	i1, i2 := uuid.New(), uuid.New()
	f.window(i1)
	f.window(i2)
	start := at(time.July, 5, 10, 15)
	f.bookings.concurrent = append(f.bookings.concurrent, &model.Booking{
		ID: uuid.New(), OwnerID: uuid.New(), InstructorID: &i1, StartsAt: start, EndsAt: start.Add(30 * time.Minute),
		Status: model.BookingStatusBooked,
	})
	session, child := f.parentWithChild("Аня")

	booking, err := f.bookingSvc.Book(context.Background(), session, &child.ID, start)
	require.NoError(t, err)
	require.NotNil(t, booking.InstructorID)
	assert.Equal(t, i2, *booking.InstructorID)
	assert.Equal(t, 2, f.bookings.creates)

	// оба инструктора заняты параллельно
	f.bookings.concurrent = append(f.bookings.concurrent, &model.Booking{
		ID: uuid.New(), OwnerID: uuid.New(), InstructorID: &i2, StartsAt: at(time.July, 5, 11, 0), EndsAt: at(time.July, 5, 11, 30),
		Status: model.BookingStatusBooked,
	}, &model.Booking{
		ID: uuid.New(), OwnerID: uuid.New(), InstructorID: &i1, StartsAt: at(time.July, 5, 11, 0), EndsAt: at(time.July, 5, 11, 30),
		Status: model.BookingStatusBooked,
	})
	boris, borisChild := f.parentWithChild("Боря")
	_, err = f.bookingSvc.Book(context.Background(), boris, &borisChild.ID, at(time.July, 5, 11, 0))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner, child := f.parentWithChild("Аня")
	other, _ := f.parentWithChild("Боря")

	booking, err := f.bookingSvc.Book(ctx, owner, &child.ID, at(time.July, 5, 10, 15))
	require.NoError(t, err)

	_, err = f.bookingSvc.Cancel(ctx, other, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.bookingSvc.Cancel(ctx, owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	_, err = f.bookingSvc.Cancel(ctx, owner, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.bookingSvc.Cancel(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// отменённая запись освобождает слот
	_, err = f.bookingSvc.Book(ctx, other, nil, at(time.July, 5, 10, 15))
	assert.NoError(t, err)
}

func TestCancel_PastLesson(t *testing.T) {
	f := newFixture()
	owner, _ := f.parentWithChild("Аня")
	past := f.booking(owner.AccountID, nil, at(time.June, 29, 10, 15), model.BookingStatusBooked)

	_, err := f.bookingSvc.Cancel(context.Background(), owner, past.ID)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestRecordOutcome(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	instructor := uuid.New()
	f.window(instructor)
	parent, child := f.parentWithChild("Аня")

	booking, err := f.bookingSvc.Book(ctx, parent, &child.ID, at(time.July, 5, 10, 15))
	require.NoError(t, err)

	done := OutcomeInput{Status: model.BookingStatusCompleted, SkillGroup: "dolphin", LastSkill: "back float"}

	_, err = f.bookingSvc.RecordOutcome(ctx, parent, booking.ID, done)
	assert.ErrorIs(t, err, ErrForbidden)

	otherInstructor := model.Session{AccountID: uuid.New(), Role: model.RoleInstructor}
	_, err = f.bookingSvc.RecordOutcome(ctx, otherInstructor, booking.ID, done)
	assert.ErrorIs(t, err, ErrForbidden)

	me := model.Session{AccountID: instructor, Role: model.RoleInstructor}
	updated, err := f.bookingSvc.RecordOutcome(ctx, me, booking.ID, done)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, updated.Status)
	assert.Equal(t, "dolphin", *updated.SkillGroup)
	assert.Equal(t, "dolphin", child.SkillGroup)
	assert.Equal(t, "back float", child.LastObtainedSkill)

	_, err = f.bookingSvc.RecordOutcome(ctx, me, booking.ID, OutcomeInput{Status: model.BookingStatusNoShow})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordOutcome_NoShowKeepsProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent, child := f.parentWithChild("Аня")
	booking, err := f.bookingSvc.Book(ctx, parent, &child.ID, at(time.July, 5, 10, 15))
	require.NoError(t, err)

	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}
	_, err = f.bookingSvc.RecordOutcome(ctx, admin, booking.ID, OutcomeInput{Status: model.BookingStatusNoShow, LastSkill: "kick"})
	require.NoError(t, err)

	assert.Equal(t, "starfish", child.SkillGroup)
	assert.Empty(t, child.LastObtainedSkill)
}

func TestUpcoming(t *testing.T) {
	f := newFixture()
	owner, _ := f.parentWithChild("Аня")
	future := f.booking(owner.AccountID, nil, at(time.July, 5, 10, 15), model.BookingStatusBooked)
	f.booking(owner.AccountID, nil, at(time.July, 6, 10, 15), model.BookingStatusCancelled)
	f.booking(owner.AccountID, nil, at(time.June, 29, 10, 15), model.BookingStatusCompleted)
	f.booking(uuid.New(), nil, at(time.July, 5, 11, 0), model.BookingStatusBooked)

	upcoming, err := f.bookingSvc.Upcoming(context.Background(), owner)
	require.NoError(t, err)

	require.Len(t, upcoming, 1)
	assert.Equal(t, future.ID, upcoming[0].ID)
}

func TestUpcomingOf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client, child := f.parentWithChild("Аня")
	own := f.booking(client.AccountID, nil, at(time.July, 5, 10, 15), model.BookingStatusBooked)
	childs := f.booking(child.ID, nil, at(time.July, 6, 10, 15), model.BookingStatusBooked)
	f.booking(uuid.New(), nil, at(time.July, 5, 11, 0), model.BookingStatusBooked)

	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}
	upcoming, err := f.bookingSvc.UpcomingOf(ctx, admin, client.AccountID, []uuid.UUID{child.ID})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, own.ID, upcoming[0].ID)
	assert.Equal(t, childs.ID, upcoming[1].ID)

	_, err = f.bookingSvc.UpcomingOf(ctx, client, client.AccountID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBook_FillsInstructorName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	instructor := &model.Account{Role: model.RoleInstructor, Name: "Ольга"}
	require.NoError(t, f.accounts.Create(ctx, instructor))
	f.window(instructor.ID)

	anna, annaChild := f.parentWithChild("Аня")
	booking, err := f.bookingSvc.Book(ctx, anna, &annaChild.ID, at(time.July, 5, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, "Ольга", booking.InstructorName)
	assert.Equal(t, "Аня", booking.ChildName)
}
