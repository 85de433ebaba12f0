package common

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popiko/lessons_bot/internal/model"
)

const maxCallbackData = 64

func TestBookData(t *testing.T) {
	start := time.Date(2025, time.July, 5, 17, 15, 0, 0, time.UTC)
	child := uuid.New()

	data := BookData(start, &child)
	assert.LessOrEqual(t, len(data), maxCallbackData)

	gotStart, gotChild, err := ParseBookData(data)
	require.NoError(t, err)
	assert.True(t, start.Equal(gotStart))
	require.NotNil(t, gotChild)
	assert.Equal(t, child, *gotChild)

	gotStart, gotChild, err = ParseBookData(BookData(start, nil))
	require.NoError(t, err)
	assert.True(t, start.Equal(gotStart))
	assert.Nil(t, gotChild)
}

func TestOutcomeData(t *testing.T) {
	id := uuid.New()

	for _, status := range []model.BookingStatus{model.BookingStatusCompleted, model.BookingStatusNoShow} {
		data := OutcomeData(id, status)
		assert.LessOrEqual(t, len(data), maxCallbackData)

		gotID, gotStatus, err := ParseOutcomeData(data)
		require.NoError(t, err)
		assert.Equal(t, id, gotID)
		assert.Equal(t, status, gotStatus)
	}
}

func TestIDData(t *testing.T) {
	id := uuid.New()

	for _, prefix := range []string{PrefixCancelBooking, PrefixNote, PrefixReservationOff, PrefixWindowOff} {
		data := IDData(prefix, id)
		assert.LessOrEqual(t, len(data), maxCallbackData)

		got, err := ParseIDData(prefix, data)
		require.NoError(t, err, prefix)
		assert.Equal(t, id, got)
	}
}

func TestWeekData(t *testing.T) {
	offset, err := ParseWeekData(WeekData(3))
	require.NoError(t, err)
	assert.Equal(t, 3, offset)
}

func TestParseCallbackData_Rejects(t *testing.T) {
	_, _, err := ParseBookData("book:abc:-")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, err = ParseBookData("book:1751735700")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, err = ParseBookData("book:1751735700:not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseOutcomeData(OutcomeData(uuid.New(), "paid"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, err = ParseOutcomeData("outcome:" + uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDData(PrefixNote, IDData(PrefixCancelBooking, uuid.New()))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseWeekData("week:next")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
