package model

import (
	"time"

	"github.com/google/uuid"
)

// Charge начисление родителю. Суммы в центах
type Charge struct {
	ID            uuid.UUID `json:"id"`
	AccountID     uuid.UUID `json:"account_id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	AmountCents   int64     `json:"amount_cents"`
	DiscountCents int64     `json:"discount_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

// DueCents сумма к оплате со скидкой
func (c *Charge) DueCents() int64 {
	return c.AmountCents - c.DiscountCents
}
