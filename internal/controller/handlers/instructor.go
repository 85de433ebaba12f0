package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/model"
)

// Сколько дней вперёд показывает /open
const openLessonsDays = 7

// HandleAgenda обрабатывает команду /agenda [ДД.ММ]
func (h *Handlers) HandleAgenda(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	loc := h.availabilityService.Location()

	day, err := parseAgendaDay(commandArgs(update.Message.Text), time.Now().In(loc))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /agenda или /agenda 05.07")
		return
	}

	lessons, err := h.instructorService.Agenda(ctx, session.AccountID, day)
	if err != nil {
		h.logger.Error("Failed to load agenda", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildAgendaScreen(day, lessons, loc)
	h.sendMessage(ctx, b, chatID, text, keyboard)
}

// HandleOpenLessons обрабатывает команду /open
func (h *Handlers) HandleOpenLessons(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, _, ok := h.requireStaff(ctx, b, update); !ok {
		return
	}

	now := time.Now()
	slots, err := h.availabilityService.OpenLessons(ctx, now, now.AddDate(0, 0, openLessonsDays-1))
	if err != nil {
		h.logger.Error("Failed to load open lessons", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildOpenLessonsScreen(slots, h.availabilityService.Location()), nil)
}

// HandleWindows обрабатывает команду /windows
func (h *Handlers) HandleWindows(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}

	windows, err := h.instructorService.Windows(ctx, session.AccountID)
	if err != nil {
		h.logger.Error("Failed to list windows", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildWindowsScreen(windows)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, keyboard)
}

// HandleAddWindow обрабатывает команду /addwindow Sat 10:00 14:00 [summer]
func (h *Handlers) HandleAddWindow(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	wt, summer, err := parseWindowArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /addwindow Sat 10:00 14:00 [summer]")
		return
	}

	iv := &model.AvailabilityInterval{
		InstructorID: session.AccountID,
		Weekday:      int(wt.weekday),
		InSeason:     summer,
		StartHour:    wt.start.Hour,
		StartMinute:  wt.start.Minute,
		EndHour:      wt.end.Hour,
		EndMinute:    wt.end.Minute,
	}
	if err := h.instructorService.SetAvailability(ctx, session, iv); err != nil {
		h.logger.Warn("Failed to add window", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Окно добавлено. Все окна: /windows", nil)
}
