package model

import (
	"time"

	"github.com/google/uuid"
)

// RecurringReservation еженедельная бронь (постоянный клиент)
type RecurringReservation struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	ChildID      *uuid.UUID `json:"child_id"`
	InstructorID *uuid.UUID `json:"instructor_id"`
	Weekday      int        `json:"weekday"`      // 0 = Sunday, 6 = Saturday
	StartHour    int        `json:"start_hour"`   // 0-23
	StartMinute  int        `json:"start_minute"` // 0-59
	EndHour      int        `json:"end_hour"`
	EndMinute    int        `json:"end_minute"`
	SkillGroup   *string    `json:"skill_group"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}
