package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/model"
)

func newChargeFixture(t *testing.T) (*ChargeService, *memCharges, *model.Account) {
	t.Helper()
	accounts := &memAccounts{}
	parent := &model.Account{TelegramID: 1, Name: "Мария", Role: model.RoleParent}
	require.NoError(t, accounts.Create(context.Background(), parent))

	charges := &memCharges{}
	svc := NewChargeService(charges, accounts, time.UTC, zap.NewNop())
	svc.now = func() time.Time { return at(time.July, 1, 8, 0) }
	return svc, charges, parent
}

func TestChargeAdd(t *testing.T) {
	svc, charges, parent := newChargeFixture(t)
	ctx := context.Background()
	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}

	charge, err := svc.Add(ctx, admin, ChargeInput{
		AccountID:     parent.ID,
		Title:         "  Абонемент июль ",
		AmountCents:   20000,
		DiscountCents: 2500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Абонемент июль", charge.Title)
	assert.Equal(t, at(time.July, 1, 0, 0), charge.Date)
	assert.Equal(t, int64(17500), charge.DueCents())
	assert.Len(t, charges.charges, 1)
}

func TestChargeAdd_Rejects(t *testing.T) {
	svc, charges, parent := newChargeFixture(t)
	ctx := context.Background()
	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}

	tests := []struct {
		name    string
		session model.Session
		input   ChargeInput
		want    error
	}{
		{
			name:    "parent cannot charge",
			session: model.Session{AccountID: parent.ID, Role: model.RoleParent},
			input:   ChargeInput{AccountID: parent.ID, Title: "x", AmountCents: 100},
			want:    ErrForbidden,
		},
		{
			name:    "empty title",
			session: admin,
			input:   ChargeInput{AccountID: parent.ID, Title: "   ", AmountCents: 100},
			want:    ErrInvalidInput,
		},
		{
			name:    "zero amount",
			session: admin,
			input:   ChargeInput{AccountID: parent.ID, Title: "Урок"},
			want:    ErrInvalidInput,
		},
		{
			name:    "discount above amount",
			session: admin,
			input:   ChargeInput{AccountID: parent.ID, Title: "Урок", AmountCents: 100, DiscountCents: 101},
			want:    ErrInvalidInput,
		},
		{
			name:    "unknown account",
			session: admin,
			input:   ChargeInput{AccountID: uuid.New(), Title: "Урок", AmountCents: 100},
			want:    ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.session, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, charges.charges)
}

func TestChargeMonth(t *testing.T) {
	svc, _, parent := newChargeFixture(t)
	ctx := context.Background()
	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}

	for _, in := range []ChargeInput{
		{AccountID: parent.ID, Title: "Июнь", Date: at(time.June, 30, 0, 0), AmountCents: 5000},
		{AccountID: parent.ID, Title: "Урок 1", Date: at(time.July, 1, 0, 0), AmountCents: 4000, DiscountCents: 500},
		{AccountID: parent.ID, Title: "Урок 2", Date: at(time.July, 31, 0, 0), AmountCents: 4000},
		{AccountID: parent.ID, Title: "Август", Date: at(time.August, 1, 0, 0), AmountCents: 5000},
	} {
		_, err := svc.Add(ctx, admin, in)
		require.NoError(t, err)
	}

	own := model.Session{AccountID: parent.ID, Role: model.RoleParent}
	statement, err := svc.Month(ctx, own, parent.ID, at(time.July, 15, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, at(time.July, 1, 0, 0), statement.Month)
	require.Len(t, statement.Charges, 2)
	assert.Equal(t, "Урок 1", statement.Charges[0].Title)
	assert.Equal(t, int64(8000), statement.AmountCents)
	assert.Equal(t, int64(500), statement.DiscountCents)
	assert.Equal(t, int64(7500), statement.DueCents())

	statement, err = svc.Month(ctx, admin, parent.ID, at(time.September, 1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, statement.Charges)
	assert.Zero(t, statement.DueCents())

	_, err = svc.Month(ctx, model.Session{AccountID: uuid.New(), Role: model.RoleInstructor}, parent.ID, at(time.July, 1, 0, 0))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChargeAdd_DatedByPoolCalendar(t *testing.T) {
	svc, _, parent := newChargeFixture(t)
	svc.loc = time.FixedZone("PDT", -7*3600)
	// в Лос-Анджелесе ещё 30 июня
	svc.now = func() time.Time { return at(time.July, 1, 3, 0) }
	admin := model.Session{AccountID: uuid.New(), Role: model.RoleAdmin}

	charge, err := svc.Add(context.Background(), admin, ChargeInput{AccountID: parent.ID, Title: "Урок", AmountCents: 4000})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), charge.Date)

	statement, err := svc.Month(context.Background(), admin, parent.ID, svc.CurrentMonth())
	require.NoError(t, err)
	assert.Equal(t, time.June, statement.Month.Month())
	assert.Len(t, statement.Charges, 1)
}
