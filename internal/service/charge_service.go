package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
)

var validate = validator.New()

// ChargeInput начисление от администратора. Date по умолчанию сегодня
type ChargeInput struct {
	AccountID     uuid.UUID `validate:"required"`
	Title         string    `validate:"required,max=128"`
	Date          time.Time
	AmountCents   int64 `validate:"gt=0"`
	DiscountCents int64 `validate:"gte=0,ltefield=AmountCents"`
}

// Statement начисления за месяц
type Statement struct {
	Month         time.Time
	Charges       []*model.Charge
	AmountCents   int64
	DiscountCents int64
}

// DueCents итого к оплате
func (s *Statement) DueCents() int64 {
	return s.AmountCents - s.DiscountCents
}

type ChargeService struct {
	charges  ChargeStore
	accounts AccountStore
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewChargeService(charges ChargeStore, accounts AccountStore, loc *time.Location, logger *zap.Logger) *ChargeService {
	return &ChargeService{
		charges:  charges,
		accounts: accounts,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Add администратор начисляет оплату родителю
func (s *ChargeService) Add(ctx context.Context, session model.Session, input ChargeInput) (*model.Charge, error) {
	if session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Date.IsZero() {
		input.Date = s.now()
	}

	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	charge := &model.Charge{
		AccountID:     account.ID,
		Title:         input.Title,
		Date:          calendarDate(input.Date, s.loc),
		AmountCents:   input.AmountCents,
		DiscountCents: input.DiscountCents,
	}
	if err := s.charges.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("create charge: %w", err)
	}

	s.logger.Info("Charge added",
		zap.String("charge_id", charge.ID.String()),
		zap.String("account_id", account.ID.String()),
		zap.Int64("amount_cents", charge.AmountCents),
		zap.Int64("discount_cents", charge.DiscountCents),
		zap.String("by", session.AccountID.String()))

	return charge, nil
}

// Month начисления за календарный месяц, в который попадает month.
// Родитель видит только свои, администратор любые
func (s *ChargeService) Month(ctx context.Context, session model.Session, accountID uuid.UUID, month time.Time) (*Statement, error) {
	if accountID != session.AccountID && session.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	day := calendarDate(month, s.loc)
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	charges, err := s.charges.ListByAccount(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}

	statement := &Statement{Month: from, Charges: charges}
	for _, c := range charges {
		statement.AmountCents += c.AmountCents
		statement.DiscountCents += c.DiscountCents
	}
	return statement, nil
}

// calendarDate день t в зоне loc как полночь UTC, в таком виде даты лежат в колонке DATE
func calendarDate(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentMonth месяц по часам сервиса
func (s *ChargeService) CurrentMonth() time.Time {
	return s.now().In(s.loc)
}
