package service

import (
	"time"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

func bookedIntervals(bookings []*model.Booking) []schedule.BookedInterval {
	intervals := make([]schedule.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, schedule.BookedInterval{
			Start:        b.StartsAt,
			End:          b.EndsAt,
			OwnerID:      b.OwnerID,
			InstructorID: b.InstructorID,
			Status:       b.Status,
		})
	}
	return intervals
}

func recurringOf(res *model.RecurringReservation) schedule.RecurringReservation {
	return schedule.RecurringReservation{
		Weekday:      time.Weekday(res.Weekday),
		StartTime:    schedule.TimeOfDay{Hour: res.StartHour, Minute: res.StartMinute},
		EndTime:      schedule.TimeOfDay{Hour: res.EndHour, Minute: res.EndMinute},
		OwnerID:      res.OwnerID,
		InstructorID: res.InstructorID,
	}
}

func windowOf(iv *model.AvailabilityInterval) schedule.InstructorWindow {
	return schedule.InstructorWindow{
		InstructorID: iv.InstructorID,
		Weekday:      time.Weekday(iv.Weekday),
		InSeason:     iv.InSeason,
		WindowStart:  schedule.TimeOfDay{Hour: iv.StartHour, Minute: iv.StartMinute},
		WindowEnd:    schedule.TimeOfDay{Hour: iv.EndHour, Minute: iv.EndMinute},
	}
}

func viewerOf(session model.Session) schedule.Viewer {
	return schedule.Viewer{AccountID: session.AccountID, LinkedAccountIDs: session.LinkedAccountIDs}
}

// dayStart полночь даты t в зоне loc
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// validClock проверяет часы и минуты, пришедшие от пользователя
func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// DisplayStatus как слот показывается роли. Чужую запись персонал видит как "reserved",
// родитель как "unavailable"
func DisplayStatus(c schedule.Classification, role model.Role) string {
	switch c {
	case schedule.Available:
		return "available"
	case schedule.BookedBySelf:
		return "booked"
	case schedule.BookedByOther:
		if role.IsStaff() {
			return "reserved"
		}
		return "unavailable"
	}
	return "unavailable"
}
