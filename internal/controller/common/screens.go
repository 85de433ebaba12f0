package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/controller/common/keyboard"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

// Telegram принимает не больше 100 кнопок в одной клавиатуре
const maxBookButtons = 60

// BuildAvailableScreen свободные слоты по дням с кнопками записи на каждого ребёнка.
// Без детей кнопки записывают самого родителя
func BuildAvailableScreen(slots []schedule.AnnotatedSlot, children []*model.Child, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🏊 <b>Свободные уроки</b>\n")

	kb := keyboard.NewBuilder()
	buttons := 0
	shown := 0
	var lastDay string

	for _, slot := range slots {
		if slot.Classification != schedule.Available {
			continue
		}
		shown++

		start := slot.Start.In(loc)
		if day := formatting.FormatDate(start); day != lastDay {
			lastDay = day
			fmt.Fprintf(&sb, "\n📅 <b>%s, %s</b>\n", formatting.WeekdayName(start.Weekday()), day)
		}
		fmt.Fprintf(&sb, "🟢 %s\n", formatting.FormatTimeRange(start, slot.End.In(loc)))

		if buttons >= maxBookButtons {
			continue
		}
		label := formatting.FormatDayMonth(start) + " " + formatting.FormatTime(start)
		if len(children) == 0 {
			kb.Row(keyboard.Button("✍️ "+label, BookData(slot.Start, nil)))
			buttons++
			continue
		}
		row := make([]models.InlineKeyboardButton, 0, len(children))
		for _, c := range children {
			id := c.ID
			row = append(row, keyboard.Button(fmt.Sprintf("✍️ %s · %s", label, c.Name), BookData(slot.Start, &id)))
		}
		kb.Grid(2, row...)
		buttons += len(row)
	}

	if shown == 0 {
		return "😔 Свободных уроков на ближайшие дни нет.\n\nПосмотрите расписание недели: /week", nil
	}
	if len(children) == 0 {
		sb.WriteString("\n💡 Чтобы записывать детей, добавьте их командой /addchild")
	}

	return sb.String(), kb.Build()
}

// BuildLessonsScreen предстоящие уроки вызывающего с кнопками отмены
func BuildLessonsScreen(bookings []*model.Booking, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	if len(bookings) == 0 {
		return "📭 У вас нет предстоящих уроков.\n\nЗаписаться: /available", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Мои уроки</b> (%d %s)\n\n", len(bookings), formatting.PluralizeLessons(len(bookings)))

	kb := keyboard.NewBuilder()
	for _, b := range bookings {
		when := formatting.FormatLesson(b.StartsAt, b.EndsAt, loc)
		fmt.Fprintf(&sb, "%s %s", formatting.BookingDisplay(b.Status).Emoji, when)
		if b.ChildName != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(b.ChildName))
		}
		if b.InstructorName != "" {
			fmt.Fprintf(&sb, "\n    👤 %s", html.EscapeString(b.InstructorName))
		}
		sb.WriteString("\n")

		kb.Row(keyboard.Button("❌ Отменить "+formatting.FormatDayMonth(b.StartsAt.In(loc))+" "+formatting.FormatTime(b.StartsAt.In(loc)),
			IDData(PrefixCancelBooking, b.ID)))
	}

	return sb.String(), kb.Build()
}

// BuildAgendaScreen уроки инструктора за день с кнопками итога и заметок
func BuildAgendaScreen(day time.Time, lessons []*model.Booking, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	header := fmt.Sprintf("🗓 <b>Уроки на %s</b>\n\n", formatting.FormatDate(day.In(loc)))
	if len(lessons) == 0 {
		return header + "Уроков нет.", nil
	}

	var sb strings.Builder
	sb.WriteString(header)

	kb := keyboard.NewBuilder()
	for _, b := range lessons {
		display := formatting.BookingDisplay(b.Status)
		name := b.ChildName
		if name == "" {
			name = "без имени"
		}
		fmt.Fprintf(&sb, "%s %s · %s", display.Emoji, formatting.FormatTimeRange(b.StartsAt.In(loc), b.EndsAt.In(loc)), html.EscapeString(name))
		if b.SkillGroup != nil && *b.SkillGroup != "" {
			fmt.Fprintf(&sb, " (%s)", html.EscapeString(*b.SkillGroup))
		}
		sb.WriteString("\n")

		var row []models.InlineKeyboardButton
		if b.Status == model.BookingStatusBooked {
			at := formatting.FormatTime(b.StartsAt.In(loc))
			row = append(row,
				keyboard.Button("✅ "+at, OutcomeData(b.ID, model.BookingStatusCompleted)),
				keyboard.Button("🚫 "+at, OutcomeData(b.ID, model.BookingStatusNoShow)),
			)
		}
		if b.ChildID != nil {
			row = append(row, keyboard.Button("📝 "+name, IDData(PrefixNote, *b.ChildID)))
		}
		kb.Row(row...)
	}

	return sb.String(), kb.Build()
}

// BuildOpenLessonsScreen свободные уроки с числом свободных инструкторов
func BuildOpenLessonsScreen(slots []schedule.AnnotatedSlot, loc *time.Location) string {
	if len(slots) == 0 {
		return "😔 Нет уроков со свободными инструкторами.\n\nИнструкторы добавляют окна командой /addwindow"
	}

	var sb strings.Builder
	sb.WriteString("🏊 <b>Открытые уроки</b>\n")

	var lastDay string
	for _, slot := range slots {
		start := slot.Start.In(loc)
		if day := formatting.FormatDate(start); day != lastDay {
			lastDay = day
			fmt.Fprintf(&sb, "\n📅 <b>%s, %s</b>\n", formatting.WeekdayName(start.Weekday()), day)
		}
		n := len(slot.AvailableInstructors)
		fmt.Fprintf(&sb, "• %s · %d %s\n", formatting.FormatTimeRange(start, slot.End.In(loc)), n, formatting.PluralizeInstructors(n))
	}

	return sb.String()
}

// BuildWindowsScreen окна инструктора с кнопками удаления
func BuildWindowsScreen(windows []*model.AvailabilityInterval) (string, *models.InlineKeyboardMarkup) {
	if len(windows) == 0 {
		return "🕒 У вас нет окон доступности.\n\nДобавить: /addwindow Sat 10:00 14:00 [summer]", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🕒 <b>Мои окна</b> (%d %s)\n\n", len(windows), formatting.PluralizeSlots(len(windows)))

	kb := keyboard.NewBuilder()
	for _, w := range windows {
		label := fmt.Sprintf("%s %02d:%02d–%02d:%02d",
			formatting.WeekdayShort(time.Weekday(w.Weekday)), w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
		season := "вне сезона"
		if w.InSeason {
			season = "лето"
		}
		fmt.Fprintf(&sb, "• %s (%s)\n", label, season)
		kb.Row(keyboard.Button("🗑 "+label, IDData(PrefixWindowOff, w.ID)))
	}

	return sb.String(), kb.Build()
}

// BuildReservationsScreen постоянные брони с кнопками отключения
func BuildReservationsScreen(reservations []*model.RecurringReservation, withButtons bool) (string, *models.InlineKeyboardMarkup) {
	if len(reservations) == 0 {
		return "📌 Постоянных броней нет.", nil
	}

	var sb strings.Builder
	sb.WriteString("📌 <b>Постоянные брони</b>\n\n")

	kb := keyboard.NewBuilder()
	for _, r := range reservations {
		label := fmt.Sprintf("%s %02d:%02d–%02d:%02d",
			formatting.WeekdayShort(time.Weekday(r.Weekday)), r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
		fmt.Fprintf(&sb, "• %s · %s\n", label, r.OwnerID.String()[:8])
		if withButtons {
			kb.Row(keyboard.Button("⏹ "+label, IDData(PrefixReservationOff, r.ID)))
		}
	}

	return sb.String(), kb.Build()
}

// WeekKeyboard навигация по неделям
func WeekKeyboard(offset int) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	row := []models.InlineKeyboardButton{}
	if offset > 0 {
		row = append(row, keyboard.Button("⬅️ Назад", WeekData(offset-1)))
	}
	row = append(row, keyboard.Button("Вперёд ➡️", WeekData(offset+1)))
	return kb.Row(row...).Build()
}

// BuildStaffScreen список инструкторов с telegram id для /reserve и /promote
func BuildStaffScreen(instructors []*model.Account) string {
	if len(instructors) == 0 {
		return "👥 Инструкторов пока нет. Назначьте роль командой /promote."
	}

	var sb strings.Builder
	sb.WriteString("👥 <b>Инструкторы</b>\n\n")
	for _, a := range instructors {
		fmt.Fprintf(&sb, "• %s · <code>%d</code>", html.EscapeString(a.Name), a.TelegramID)
		if a.Username != "" {
			fmt.Fprintf(&sb, " · @%s", html.EscapeString(a.Username))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
