package parent

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
)

// HandleBook записывает на слот из /available
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	start, childID, err := common.ParseBookData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, d, func(hc *common.HandlerContext) {
		booking, err := d.Bookings.Book(ctx, hc.Session, childID, start)
		if err != nil {
			d.Logger.Warn("Failed to book lesson",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Time("start", start),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		loc := d.Availability.Location()
		text := "✅ <b>Запись создана!</b>\n\n📅 " + formatting.FormatLesson(booking.StartsAt, booking.EndsAt, loc)
		if booking.ChildName != "" {
			text += "\n👶 " + html.EscapeString(booking.ChildName)
		}
		if booking.InstructorName != "" {
			text += "\n👤 " + html.EscapeString(booking.InstructorName)
		}
		text += "\n\nВсе записи: /mylessons"

		hc.Answer("✅ Записано")
		if err := hc.SendMessage(text, nil); err != nil {
			d.Logger.Error("Failed to send booking confirmation", zap.Error(err))
		}
	})
}

// HandleCancelBooking отменяет урок из /mylessons
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	bookingID, err := common.ParseIDData(common.PrefixCancelBooking, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, d, func(hc *common.HandlerContext) {
		booking, err := d.Bookings.Cancel(ctx, hc.Session, bookingID)
		if err != nil {
			d.Logger.Warn("Failed to cancel lesson",
				zap.String("booking_id", bookingID.String()),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("Урок отменён")

		// обновляем список на месте
		lessons, err := d.Bookings.Upcoming(ctx, hc.Session)
		if err != nil {
			d.Logger.Error("Failed to reload lessons", zap.Error(err))
			return
		}
		text, keyboard := common.BuildLessonsScreen(lessons, d.Availability.Location())
		text = fmt.Sprintf("❌ Отменён урок %s\n\n%s",
			formatting.FormatLesson(booking.StartsAt, booking.EndsAt, d.Availability.Location()), text)
		if err := hc.EditMessage(text, keyboard); err != nil {
			d.Logger.Error("Failed to edit lessons message", zap.Error(err))
		}
	})
}
