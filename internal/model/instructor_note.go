package model

import (
	"time"

	"github.com/google/uuid"
)

// InstructorNote заметка инструктора о ребёнке, одна на пару (ребёнок, инструктор)
type InstructorNote struct {
	ID           uuid.UUID `json:"id"`
	ChildID      uuid.UUID `json:"child_id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	Note         string    `json:"note"`
	UpdatedAt    time.Time `json:"updated_at"`
}
