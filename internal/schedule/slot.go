package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/popiko/lessons_bot/internal/model"
)

// TimeSlot кандидат на урок. Два слота равны, если совпадает начало
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// BookedInterval занятый отрезок времени: разовая запись или вхождение постоянной брони
type BookedInterval struct {
	Start        time.Time
	End          time.Time
	OwnerID      uuid.UUID
	InstructorID *uuid.UUID
	Status       model.BookingStatus
}

// RecurringReservation еженедельная бронь без даты окончания
type RecurringReservation struct {
	Weekday      time.Weekday
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	OwnerID      uuid.UUID
	InstructorID *uuid.UUID
}

// InstructorWindow время суток, в которое инструктор доступен в указанный день недели
type InstructorWindow struct {
	InstructorID uuid.UUID
	Weekday      time.Weekday
	InSeason     bool
	WindowStart  TimeOfDay
	WindowEnd    TimeOfDay
}

// Classification итоговое состояние слота для конкретного зрителя
type Classification string

const (
	Available     Classification = "available"
	BookedBySelf  Classification = "booked_by_self"
	BookedByOther Classification = "booked_by_other"
	Unavailable   Classification = "unavailable"
)

// AnnotatedSlot слот с классификацией.
// AvailableInstructors заполнен только для Available
type AnnotatedSlot struct {
	TimeSlot
	Classification       Classification
	AvailableInstructors []uuid.UUID
}

// Viewer тот, для кого считается классификация
type Viewer struct {
	AccountID        uuid.UUID
	LinkedAccountIDs []uuid.UUID
}

// Owns true для собственного или связанного аккаунта
func (v Viewer) Owns(id uuid.UUID) bool {
	if id == v.AccountID {
		return true
	}
	for _, linked := range v.LinkedAccountIDs {
		if linked == id {
			return true
		}
	}
	return false
}

// dateOf обрезает время до начала календарного дня
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minuteKey ключ слияния слотов: начало с точностью до минуты
func minuteKey(t time.Time) int64 {
	return t.Truncate(time.Minute).Unix()
}
