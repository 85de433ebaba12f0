package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/controller/common/keyboard"
	"github.com/popiko/lessons_bot/internal/curriculum"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/service"
)

// ChildProgress блок прогресса ребёнка по программе
func ChildProgress(child *model.Child) string {
	p := curriculum.ProgressOf(child.SkillGroup, child.LastObtainedSkill)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏅 Раздел %d из %d: %s\n", p.SectionNumber, len(curriculum.Sections()), html.EscapeString(p.Section.Title))
	fmt.Fprintf(&sb, "%s %d/%d\n", formatting.ProgressBar(p.Percent()), p.Obtained, p.Total)
	if p.Last != nil {
		fmt.Fprintf(&sb, "✨ Освоено: %s\n", html.EscapeString(p.Last.Name))
	}
	if p.Next != nil {
		fmt.Fprintf(&sb, "🎯 Дальше: %s\n    <i>%s</i>\n", html.EscapeString(p.Next.Name), html.EscapeString(p.Next.Description))
	} else {
		sb.WriteString("🏆 Раздел пройден\n")
	}
	return sb.String()
}

// BuildProgressScreen прогресс всех детей родителя
func BuildProgressScreen(children []*model.Child) string {
	if len(children) == 0 {
		return "👶 У вас пока нет детей в профиле.\n\nДобавить: /addchild Имя"
	}

	var sb strings.Builder
	sb.WriteString("🏊 <b>Прогресс плавания</b>\n")
	for _, c := range children {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", html.EscapeString(c.Name))
		sb.WriteString(ChildProgress(c))
	}
	return sb.String()
}

// SkillKeyboard кнопка отметки следующего навыка. nil, если программа пройдена
func SkillKeyboard(child *model.Child) *models.InlineKeyboardMarkup {
	_, skill, ok := curriculum.Advance(child.SkillGroup, child.LastObtainedSkill)
	if !ok {
		return nil
	}
	return keyboard.NewBuilder().
		Row(keyboard.Button("✅ Освоен: "+skill.Name, IDData(PrefixSkill, child.ID))).
		Build()
}

// BuildClientsScreen список родителей с кнопками карточки
func BuildClientsScreen(clients []*model.Account) (string, *models.InlineKeyboardMarkup) {
	if len(clients) == 0 {
		return "👥 Клиентов пока нет.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Клиенты</b> (%d)\n\n", len(clients))

	kb := keyboard.NewBuilder()
	for _, a := range clients {
		fmt.Fprintf(&sb, "• %s · <code>%d</code>", html.EscapeString(a.Name), a.TelegramID)
		if a.Username != "" {
			fmt.Fprintf(&sb, " · @%s", html.EscapeString(a.Username))
		}
		sb.WriteString("\n")
		kb.Row(keyboard.Button("📇 "+a.Name, IDData(PrefixClient, a.ID)))
	}
	return sb.String(), kb.Build()
}

// BuildClientCard карточка клиента: дети с прогрессом, ближайшие уроки и начисления месяца
func BuildClientCard(account *model.Account, children []*model.Child, upcoming []*model.Booking, statement *service.Statement, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📇 <b>%s</b>\n", html.EscapeString(account.Name))
	fmt.Fprintf(&sb, "🆔 <code>%d</code>", account.TelegramID)
	if account.Username != "" {
		fmt.Fprintf(&sb, " · @%s", html.EscapeString(account.Username))
	}
	sb.WriteString("\n")

	sb.WriteString("\n👶 <b>Дети</b>\n")
	if len(children) == 0 {
		sb.WriteString("нет\n")
	}
	for _, c := range children {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", html.EscapeString(c.Name))
		sb.WriteString(ChildProgress(c))
	}

	fmt.Fprintf(&sb, "\n📅 <b>Ближайшие уроки</b> (%d)\n", len(upcoming))
	for _, b := range upcoming {
		fmt.Fprintf(&sb, "%s %s", formatting.BookingDisplay(b.Status).Emoji, formatting.FormatLesson(b.StartsAt, b.EndsAt, loc))
		if b.ChildName != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(b.ChildName))
		}
		sb.WriteString("\n")
	}

	if statement != nil {
		sb.WriteString("\n")
		sb.WriteString(statementBlock(statement))
	}
	return sb.String()
}

// BuildChargesScreen начисления за месяц
func BuildChargesScreen(statement *service.Statement) string {
	if len(statement.Charges) == 0 {
		return fmt.Sprintf("💳 За %s %d начислений нет.", strings.ToLower(formatting.MonthName(statement.Month.Month())), statement.Month.Year())
	}
	return statementBlock(statement)
}

func statementBlock(statement *service.Statement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💳 <b>%s %d</b>\n", formatting.MonthName(statement.Month.Month()), statement.Month.Year())
	for _, c := range statement.Charges {
		fmt.Fprintf(&sb, "• %s · %s · %s", formatting.FormatDayMonth(c.Date), html.EscapeString(c.Title), formatting.FormatMoney(c.AmountCents))
		if c.DiscountCents > 0 {
			fmt.Fprintf(&sb, " (скидка %s)", formatting.FormatMoney(c.DiscountCents))
		}
		sb.WriteString("\n")
	}
	if statement.DiscountCents > 0 {
		fmt.Fprintf(&sb, "Скидки: %s\n", formatting.FormatMoney(statement.DiscountCents))
	}
	fmt.Fprintf(&sb, "<b>Итого: %s</b>\n", formatting.FormatMoney(statement.DueCents()))
	return sb.String()
}
