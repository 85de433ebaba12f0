package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/state"
)

// handleChildName имя ребёнка после /addchild без аргументов
func (h *Handlers) handleChildName(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	h.addChild(ctx, b, update.Message.Chat.ID, update.Message.From.ID, session, update.Message.Text)
}

// handleNoteText текст заметки о ребёнке, начатой кнопкой в /agenda
func (h *Handlers) handleNoteText(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	session, _, ok := h.requireStaff(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	raw, found := h.stateManager.GetData(telegramID, state.KeyChildID)
	childID, isID := raw.(uuid.UUID)
	if !found || !isID {
		h.logger.Error("Missing child for note", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Ошибка: данные не найдены. Начните заново через /agenda")
		return
	}

	note, err := h.instructorService.SaveNote(ctx, session, childID, update.Message.Text)
	if err != nil {
		h.logger.Error("Failed to save note",
			zap.String("child_id", childID.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз или /cancel")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Заметка сохранена:\n\n<i>%s</i>", html.EscapeString(note.Note)), nil)
}
