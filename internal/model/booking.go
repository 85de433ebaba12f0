package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус урока. Набор закрыт, переходы только через CanTransitionTo
type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"    // Записан, урок впереди
	BookingStatusCompleted BookingStatus = "completed" // Урок проведён
	BookingStatusCancelled BookingStatus = "cancelled" // Отменён
	BookingStatusNoShow    BookingStatus = "noshow"    // Ученик не пришёл
)

// IsValid проверяет что статус из известного набора
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusBooked, BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo проверяет допустимость перехода.
// booked -> completed/cancelled/noshow, остальные статусы финальные
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusBooked {
		return false
	}
	switch next {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Occupies занимает ли бронирование время в расписании
func (s BookingStatus) Occupies() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      uuid.UUID     `json:"owner_id"` // аккаунт родителя, оформившего запись
	ChildID      *uuid.UUID    `json:"child_id"`
	InstructorID *uuid.UUID    `json:"instructor_id"`
	StartsAt     time.Time     `json:"starts_at"`
	EndsAt       time.Time     `json:"ends_at"`
	Status       BookingStatus `json:"status"`
	SkillGroup   *string       `json:"skill_group"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	ChildName      string `json:"child_name,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
}
