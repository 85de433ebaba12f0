package schedule

import (
	"time"

	"github.com/popiko/lessons_bot/internal/model"
)

// ExpandRecurring разворачивает еженедельную бронь в конкретные даты окна [startDate, endDate].
// Первое вхождение: ближайший день недели брони начиная со startDate (включительно),
// дальше шаг 7 дней
func ExpandRecurring(r RecurringReservation, startDate, endDate time.Time) []BookedInterval {
	from := dateOf(startDate)
	to := dateOf(endDate)
	if from.After(to) {
		return nil
	}

	offset := (int(r.Weekday) - int(from.Weekday()) + 7) % 7

	var occurrences []BookedInterval
	for day := from.AddDate(0, 0, offset); !day.After(to); day = day.AddDate(0, 0, 7) {
		occurrences = append(occurrences, BookedInterval{
			Start:        r.StartTime.On(day),
			End:          r.EndTime.On(day),
			OwnerID:      r.OwnerID,
			InstructorID: r.InstructorID,
			Status:       model.BookingStatusBooked,
		})
	}

	return occurrences
}
