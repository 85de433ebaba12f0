package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityInterval окно, в которое инструктор готов вести уроки в указанный день недели
type AvailabilityInterval struct {
	ID             uuid.UUID `json:"id"`
	InstructorID   uuid.UUID `json:"instructor_id"`
	Weekday        int       `json:"weekday"`   // 0 = Sunday, 6 = Saturday
	InSeason       bool      `json:"in_season"` // окно летнего расписания
	StartHour      int       `json:"start_hour"`
	StartMinute    int       `json:"start_minute"`
	EndHour        int       `json:"end_hour"`
	EndMinute      int       `json:"end_minute"`
	CreatedAt      time.Time `json:"created_at"`
	InstructorName string    `json:"instructor_name,omitempty"`
}
