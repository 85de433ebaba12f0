package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/model"
)

// Сколько дней вперёд показывает /available
const availableDays = 7

// HandleAvailable обрабатывает команду /available
func (h *Handlers) HandleAvailable(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	now := time.Now()
	slots, err := h.availabilityService.Week(ctx, session, now, now.AddDate(0, 0, availableDays-1))
	if err != nil {
		h.logger.Error("Failed to load available slots", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	children, err := h.accountService.ListChildren(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list children", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildAvailableScreen(slots, children, h.availabilityService.Location())
	h.sendMessage(ctx, b, chatID, text, keyboard)
}

// HandleWeek обрабатывает команду /week
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	if err := h.deps.SendWeek(ctx, b, update.Message.Chat.ID, session, 0); err != nil {
		h.logger.Error("Failed to send week", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
	}
}

// HandleMyLessons обрабатывает команду /mylessons
func (h *Handlers) HandleMyLessons(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	lessons, err := h.bookingService.Upcoming(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list lessons", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildLessonsScreen(lessons, h.availabilityService.Location())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, keyboard)
}

// HandleAddChild обрабатывает команду /addchild [имя]
func (h *Handlers) HandleAddChild(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}
	telegramID := update.Message.From.ID

	if args := commandArgs(update.Message.Text); len(args) > 0 {
		h.addChild(ctx, b, update.Message.Chat.ID, telegramID, session, strings.Join(args, " "))
		return
	}

	h.stateManager.Begin(telegramID, state.StateAwaitChildName, nil)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👶 Как зовут ребёнка?\n\nДля отмены используйте /cancel", nil)
}

func (h *Handlers) addChild(ctx context.Context, b *bot.Bot, chatID, telegramID int64, session model.Session, name string) {
	child, err := h.accountService.AddChild(ctx, session, name)
	if err != nil {
		h.logger.Warn("Failed to add child",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nИмя должно быть от 1 до 64 символов.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("✅ %s добавлен(а).\n\nЗаписаться на урок: /available", html.EscapeString(child.Name)), nil)
}

// HandleProgress обрабатывает команду /progress
func (h *Handlers) HandleProgress(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	children, err := h.accountService.ListChildren(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list children", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildProgressScreen(children), nil)
}

// HandleCharges обрабатывает команду /charges [мм.гггг]
func (h *Handlers) HandleCharges(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	month, err := parseMonth(commandArgs(update.Message.Text), h.chargeService.CurrentMonth())
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /charges или /charges 07.2025")
		return
	}

	statement, err := h.chargeService.Month(ctx, session, session.AccountID, month)
	if err != nil {
		h.logger.Error("Failed to load charges", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, common.BuildChargesScreen(statement), nil)
}
