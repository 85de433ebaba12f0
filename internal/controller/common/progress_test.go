package common

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/service"
)

func TestBuildProgressScreen(t *testing.T) {
	assert.Contains(t, BuildProgressScreen(nil), "/addchild")

	children := []*model.Child{
		{ID: uuid.New(), Name: "Маша"},
		{ID: uuid.New(), Name: "Петя", SkillGroup: "Water Safety", LastObtainedSkill: "Bobbing"},
	}
	text := BuildProgressScreen(children)

	assert.Contains(t, text, "Раздел 1 из 5: Water Safety")
	assert.Contains(t, text, "0/10")
	assert.Contains(t, text, "Дальше: Enter and Exit the pool safely")
	assert.Contains(t, text, "▰▰▰▰▱▱▱▱▱▱ 4/10")
	assert.Contains(t, text, "Освоено: Bobbing")
	assert.Contains(t, text, "Дальше: Rings")
}

func TestSkillKeyboard(t *testing.T) {
	child := &model.Child{ID: uuid.New(), SkillGroup: "Water Safety", LastObtainedSkill: "Bobbing"}

	kb := SkillKeyboard(child)
	require.NotNil(t, kb)
	assert.Contains(t, kb.InlineKeyboard[0][0].Text, "Rings")
	id, err := ParseIDData(PrefixSkill, kb.InlineKeyboard[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, child.ID, id)
}

func TestBuildClientsScreen(t *testing.T) {
	text, kb := BuildClientsScreen(nil)
	assert.Contains(t, text, "Клиентов пока нет")
	assert.Nil(t, kb)

	client := &model.Account{ID: uuid.New(), Name: "Мария", TelegramID: 7, Username: "maria"}
	text, kb = BuildClientsScreen([]*model.Account{client})
	assert.Contains(t, text, "<code>7</code> · @maria")
	require.NotNil(t, kb)
	id, err := ParseIDData(PrefixClient, kb.InlineKeyboard[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, client.ID, id)
}

func TestBuildClientCard(t *testing.T) {
	account := &model.Account{ID: uuid.New(), Name: "Мария", TelegramID: 7}
	children := []*model.Child{{ID: uuid.New(), Name: "Аня"}}
	start := time.Date(2025, time.July, 5, 10, 15, 0, 0, time.UTC)
	upcoming := []*model.Booking{{ID: uuid.New(), ChildName: "Аня", Status: model.BookingStatusBooked, StartsAt: start, EndsAt: start.Add(30 * time.Minute)}}
	statement := &service.Statement{
		Month: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Charges: []*model.Charge{
			{Title: "Урок", Date: time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), AmountCents: 4000, DiscountCents: 500},
		},
		AmountCents:   4000,
		DiscountCents: 500,
	}

	text := BuildClientCard(account, children, upcoming, statement, time.UTC)

	assert.Contains(t, text, "📇 <b>Мария</b>")
	assert.Contains(t, text, "<b>Аня</b>")
	assert.Contains(t, text, "Ближайшие уроки</b> (1)")
	assert.Contains(t, text, "Сб 05.07, 10:15–10:45 · Аня")
	assert.Contains(t, text, "Июль 2025")
	assert.Contains(t, text, "$40.00 (скидка $5.00)")
	assert.Contains(t, text, "Итого: $35.00")
}

func TestBuildChargesScreen(t *testing.T) {
	empty := &service.Statement{Month: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "💳 За август 2025 начислений нет.", BuildChargesScreen(empty))

	statement := &service.Statement{
		Month:       empty.Month,
		Charges:     []*model.Charge{{Title: "Абонемент", Date: empty.Month, AmountCents: 20000}},
		AmountCents: 20000,
	}
	text := BuildChargesScreen(statement)
	assert.Contains(t, text, "Абонемент · $200.00")
	assert.NotContains(t, text, "Скидки")
	assert.Contains(t, text, "Итого: $200.00")
}
