package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession создаёт HandlerContext с сессией вызывающего.
// При ошибке сам отвечает пользователю
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	d *Deps,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, d)

	if err := hc.LoadSession(); err != nil {
		d.Logger.Error("Failed to load session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithStaff то же, что WithSession, но только для инструкторов и администраторов
func WithStaff(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	d *Deps,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, d)

	if err := hc.RequireStaff(); err != nil {
		d.Logger.Warn("Staff check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}
