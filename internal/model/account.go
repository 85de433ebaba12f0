package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleParent     Role = "parent"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// IsStaff инструкторы и администраторы видят чужие записи как "reserved"
func (r Role) IsStaff() bool {
	return r == RoleInstructor || r == RoleAdmin
}

type Account struct {
	ID           uuid.UUID `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	LanguageCode string    `json:"language_code"`
	CreatedAt    time.Time `json:"created_at"`
}
