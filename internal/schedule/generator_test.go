package schedule

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots_OrderedByDateThenTime(t *testing.T) {
	// сб 5 июля .. пн 7 июля 2025: 9 + 9 + 6 слотов
	slots := GenerateSlots(date(2025, time.July, 5), date(2025, time.July, 7), DefaultTemplate())

	require.Len(t, slots, 24)
	assert.Equal(t, at(2025, time.July, 5, 10, 15), slots[0].Start)
	assert.Equal(t, at(2025, time.July, 5, 10, 45), slots[0].End)
	assert.Equal(t, at(2025, time.July, 7, 17, 15), slots[23].Start)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start), "slot %d out of order", i)
		assert.Equal(t, 30*time.Minute, slots[i].End.Sub(slots[i].Start))
	}
}

func TestGenerateSlots_ReversedRangeIsEmpty(t *testing.T) {
	slots := GenerateSlots(date(2025, time.July, 8), date(2025, time.July, 1), DefaultTemplate())
	assert.Empty(t, slots)
}

func TestGenerateSlots_SingleDayInclusive(t *testing.T) {
	// время внутри дня не влияет на границы диапазона
	slots := GenerateSlots(at(2025, time.November, 1, 15, 0), at(2025, time.November, 1, 9, 0), DefaultTemplate())
	assert.Len(t, slots, 9)
}

func TestGenerateSlots_OffSeasonWeekdaysAreEmpty(t *testing.T) {
	// пн 3 .. пт 7 ноября 2025
	slots := GenerateSlots(date(2025, time.November, 3), date(2025, time.November, 7), DefaultTemplate())
	assert.Empty(t, slots)
}

func TestGenerateSlots_SeasonDecidedPerDay(t *testing.T) {
	// 31 августа (вс) летний, 1 сентября (пн) уже не сезон
	slots := GenerateSlots(date(2025, time.August, 31), date(2025, time.September, 1), DefaultTemplate())

	require.Len(t, slots, 9)
	for _, s := range slots {
		assert.Equal(t, time.Sunday, s.Start.Weekday())
	}
}

func TestGenerateSlots_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, loc)
	slots := GenerateSlots(start, start.AddDate(0, 0, 1), DefaultTemplate())

	require.Len(t, slots, 18)
	// 2 ноября 2025 переход на зимнее время: часы слотов остаются локальными
	last := slots[len(slots)-1]
	assert.Equal(t, loc, last.Start.Location())
	assert.Equal(t, 16, last.Start.Hour())
	assert.Equal(t, 30, last.Start.Minute())
}
