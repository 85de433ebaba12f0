package staff

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/service"
)

// HandleOutcome отмечает урок из /agenda проведённым или пропущенным
func HandleOutcome(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	bookingID, status, err := common.ParseOutcomeData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		booking, err := d.Bookings.RecordOutcome(ctx, hc.Session, bookingID, service.OutcomeInput{Status: status})
		if err != nil {
			d.Logger.Warn("Failed to record outcome",
				zap.String("booking_id", bookingID.String()),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		display := formatting.BookingDisplay(booking.Status)
		hc.Answer(display.Emoji + " " + display.Text)

		// перерисовываем расписание дня
		loc := d.Availability.Location()
		day := booking.StartsAt.In(loc)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		lessons, err := d.Instructors.Agenda(ctx, hc.Session.AccountID, day)
		if err != nil {
			d.Logger.Error("Failed to reload agenda", zap.Error(err))
			return
		}
		text, keyboard := common.BuildAgendaScreen(day, lessons, loc)
		if err := hc.EditMessage(text, keyboard); err != nil {
			d.Logger.Error("Failed to edit agenda message", zap.Error(err))
		}
	})
}

// HandleNote показывает заметку о ребёнке и ждёт новый текст
func HandleNote(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	childID, err := common.ParseIDData(common.PrefixNote, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		child, err := d.Accounts.Child(ctx, hc.Session, childID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		note, err := d.Instructors.Note(ctx, hc.Session, childID)
		if err != nil {
			d.Logger.Error("Failed to load note", zap.String("child_id", childID.String()), zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		current := "<i>заметки пока нет</i>"
		if note.Note != "" {
			current = "<i>" + html.EscapeString(note.Note) + "</i>"
		}
		d.State.Begin(hc.TelegramID, state.StateAwaitNote, map[string]any{state.KeyChildID: childID})

		hc.Answer("")
		text := fmt.Sprintf("📝 <b>%s</b>\n%s\nТекущая заметка:\n%s\n\nОтправьте новый текст заметки или /cancel",
			html.EscapeString(child.Name), common.ChildProgress(child), current)
		if err := hc.SendMessage(text, common.SkillKeyboard(child)); err != nil {
			d.Logger.Error("Failed to send note prompt", zap.Error(err))
		}
	})
}

// HandleAdvanceSkill отмечает следующий навык программы освоенным
func HandleAdvanceSkill(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	childID, err := common.ParseIDData(common.PrefixSkill, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		child, err := d.Instructors.AdvanceSkill(ctx, hc.Session, childID)
		if err != nil {
			d.Logger.Warn("Failed to advance skill",
				zap.String("child_id", childID.String()),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("✨ " + child.LastObtainedSkill)
		text := fmt.Sprintf("🏅 <b>%s</b>\n\n%s", html.EscapeString(child.Name), common.ChildProgress(child))
		if err := hc.EditMessage(text, common.SkillKeyboard(child)); err != nil {
			d.Logger.Error("Failed to edit progress message", zap.Error(err))
		}
	})
}
