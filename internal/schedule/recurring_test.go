package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popiko/lessons_bot/internal/model"
)

func mondayLesson(owner uuid.UUID) RecurringReservation {
	return RecurringReservation{
		Weekday:   time.Monday,
		StartTime: MustTimeOfDay("13:15"),
		EndTime:   MustTimeOfDay("13:45"),
		OwnerID:   owner,
	}
}

func TestExpandRecurring_AlignsToWeekday(t *testing.T) {
	owner := uuid.New()

	// ср 2 июля .. пн 7 июля 2025
	got := ExpandRecurring(mondayLesson(owner), date(2025, time.July, 2), date(2025, time.July, 7))

	require.Len(t, got, 1)
	assert.Equal(t, at(2025, time.July, 7, 13, 15), got[0].Start)
	assert.Equal(t, at(2025, time.July, 7, 13, 45), got[0].End)
	assert.Equal(t, owner, got[0].OwnerID)
	assert.Equal(t, model.BookingStatusBooked, got[0].Status)
}

func TestExpandRecurring_SameWeekdayStartsOnStartDate(t *testing.T) {
	got := ExpandRecurring(mondayLesson(uuid.New()), date(2025, time.July, 7), date(2025, time.July, 20))

	require.Len(t, got, 2)
	assert.Equal(t, at(2025, time.July, 7, 13, 15), got[0].Start)
	assert.Equal(t, at(2025, time.July, 14, 13, 15), got[1].Start)
}

func TestExpandRecurring_WeeklyAscending(t *testing.T) {
	instructor := uuid.New()
	r := RecurringReservation{
		Weekday:      time.Saturday,
		StartTime:    MustTimeOfDay("10:15"),
		EndTime:      MustTimeOfDay("10:45"),
		OwnerID:      uuid.New(),
		InstructorID: &instructor,
	}

	got := ExpandRecurring(r, date(2025, time.November, 1), date(2025, time.November, 30))

	require.Len(t, got, 5)
	for i, occ := range got {
		assert.Equal(t, date(2025, time.November, 1).AddDate(0, 0, 7*i).Add(10*time.Hour+15*time.Minute), occ.Start)
		assert.Equal(t, &instructor, occ.InstructorID)
	}
}

func TestExpandRecurring_EmptyWindows(t *testing.T) {
	r := mondayLesson(uuid.New())

	assert.Empty(t, ExpandRecurring(r, date(2025, time.July, 8), date(2025, time.July, 1)))
	// вт .. вс: понедельника в окне нет
	assert.Empty(t, ExpandRecurring(r, date(2025, time.July, 8), date(2025, time.July, 13)))
}
