package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/model"
)

// requireSession сессия отправителя, незнакомый пользователь регистрируется.
// false, если ответ об ошибке уже отправлен
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (model.Session, *model.Account, bool) {
	if update.Message == nil || update.Message.From == nil {
		return model.Session{}, nil, false
	}

	session, account, err := h.deps.Session(ctx, update.Message.From)
	if err != nil {
		h.logger.Error("Failed to load session",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return model.Session{}, nil, false
	}

	return session, account, true
}

// requireStaff как requireSession, но только для инструкторов и администраторов
func (h *Handlers) requireStaff(ctx context.Context, b *bot.Bot, update *models.Update) (model.Session, *model.Account, bool) {
	session, account, ok := h.requireSession(ctx, b, update)
	if !ok {
		return session, nil, false
	}

	if !session.Role.IsStaff() {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrNotStaff))
		return session, nil, false
	}

	return session, account, true
}

// requireAdmin только для администраторов
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (model.Session, bool) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return session, false
	}

	if session.Role != model.RoleAdmin {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только администраторам.")
		return session, false
	}

	return session, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML-сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	if err := common.SendText(ctx, b, chatID, text, keyboard); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
