package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

func TestWeekImage_EncodesPNG(t *testing.T) {
	monday := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	slots := schedule.NewEngine(schedule.DefaultTemplate(), "").GenerateSlots(monday, monday.AddDate(0, 0, 6))
	annotated := make([]schedule.AnnotatedSlot, 0, len(slots))
	for i, s := range slots {
		c := schedule.Available
		if i%3 == 1 {
			c = schedule.BookedByOther
		}
		annotated = append(annotated, schedule.AnnotatedSlot{TimeSlot: s, Classification: c})
	}

	for _, role := range []model.Role{model.RoleParent, model.RoleInstructor} {
		data, err := WeekImage(WeekInput{
			Slots:     annotated,
			Role:      role,
			WeekStart: monday,
			Now:       monday.Add(50 * time.Hour),
			Location:  time.UTC,
		})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, imageWidth, img.Bounds().Dx())
		assert.Equal(t, imageHeight, img.Bounds().Dy())
	}
}

func TestWeekImage_EmptyWeek(t *testing.T) {
	data, err := WeekImage(WeekInput{WeekStart: time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), Now: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCalculateHourRange(t *testing.T) {
	day := time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)
	slots := []schedule.AnnotatedSlot{
		{TimeSlot: schedule.TimeSlot{Start: day.Add(10*time.Hour + 15*time.Minute), End: day.Add(10*time.Hour + 45*time.Minute)}},
		{TimeSlot: schedule.TimeSlot{Start: day.Add(17*time.Hour + 15*time.Minute), End: day.Add(17*time.Hour + 45*time.Minute)}},
	}

	hours := calculateHourRange(slots, time.UTC)
	assert.Equal(t, 9, hours.start)
	assert.Equal(t, 19, hours.end)
	assert.Equal(t, 11, hours.total)

	empty := calculateHourRange(nil, time.UTC)
	assert.Equal(t, defaultMinHour-hourPaddingTop, empty.start)
}

func TestLegendItems(t *testing.T) {
	assert.Len(t, legendItems(model.RoleParent), 3)
	assert.Len(t, legendItems(model.RoleAdmin), 4)
}
