package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/service"
)

// HandleReserve обрабатывает команду /reserve <telegram_id> Mon 13:15 13:45 [telegram_id инструктора]
func (h *Handlers) HandleReserve(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := parseReserveArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /reserve <telegram_id> Mon 13:15 13:45 [telegram_id инструктора]")
		return
	}

	owner, err := h.accountService.FindByTelegram(ctx, session, args.ownerTelegramID)
	if err != nil {
		h.logger.Warn("Reservation owner lookup failed", zap.Int64("telegram_id", args.ownerTelegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	wt := args.time
	res := &model.RecurringReservation{
		OwnerID:     owner.ID,
		Weekday:     int(wt.weekday),
		StartHour:   wt.start.Hour,
		StartMinute: wt.start.Minute,
		EndHour:     wt.end.Hour,
		EndMinute:   wt.end.Minute,
	}

	instructorName := ""
	if args.instructorTelegramID != nil {
		instructor, err := h.accountService.FindByTelegram(ctx, session, *args.instructorTelegramID)
		if err != nil {
			h.logger.Warn("Reservation instructor lookup failed", zap.Int64("telegram_id", *args.instructorTelegramID), zap.Error(err))
			h.sendError(ctx, b, chatID, common.ErrorMessage(err))
			return
		}
		if !instructor.Role.IsStaff() {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ %s не инструктор. Список инструкторов: /staff", html.EscapeString(instructor.Name)))
			return
		}
		res.InstructorID = &instructor.ID
		instructorName = instructor.Name
	}

	if err := h.reservationService.Create(ctx, session, res); err != nil {
		h.logger.Error("Failed to create reservation", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf("✅ Постоянная бронь: %s, %s–%s для %s",
		formatting.WeekdayName(wt.weekday), wt.start, wt.end, html.EscapeString(owner.Name))
	if instructorName != "" {
		text += "\n👤 Инструктор: " + html.EscapeString(instructorName)
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

// HandleReservations обрабатывает команду /reservations
func (h *Handlers) HandleReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}

	reservations, err := h.reservationService.List(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildReservationsScreen(reservations, session.Role == model.RoleAdmin)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, keyboard)
}

// HandlePromote обрабатывает команду /promote <telegram_id> <role>
func (h *Handlers) HandlePromote(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	telegramID, role, err := parsePromoteArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /promote <telegram_id> instructor|admin|parent")
		return
	}

	account, err := h.accountService.SetRoleByTelegram(ctx, session, telegramID, role)
	if err != nil {
		h.logger.Warn("Failed to change role", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ %s теперь %s", html.EscapeString(account.Name), roleName(role)), nil)
}

// HandleStaff обрабатывает команду /staff
func (h *Handlers) HandleStaff(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}

	instructors, err := h.accountService.Instructors(ctx)
	if err != nil {
		h.logger.Error("Failed to list instructors", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildStaffScreen(instructors), nil)
}

// HandleClients обрабатывает команду /clients
func (h *Handlers) HandleClients(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	clients, err := h.accountService.Clients(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, keyboard := common.BuildClientsScreen(clients)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, keyboard)
}

// HandleCharge обрабатывает команду /charge <telegram_id> <сумма> <скидка> <название>
func (h *Handlers) HandleCharge(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := parseChargeArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /charge <telegram_id> <сумма> <скидка> <название>\nНапример: /charge 123456789 40 5 Абонемент июль")
		return
	}

	account, err := h.accountService.FindByTelegram(ctx, session, args.telegramID)
	if err != nil {
		h.logger.Warn("Charge account lookup failed", zap.Int64("telegram_id", args.telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	charge, err := h.chargeService.Add(ctx, session, service.ChargeInput{
		AccountID:     account.ID,
		Title:         args.title,
		AmountCents:   args.amountCents,
		DiscountCents: args.discountCents,
	})
	if err != nil {
		h.logger.Warn("Failed to add charge", zap.String("account_id", account.ID.String()), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf("✅ Начислено %s: %s · %s",
		html.EscapeString(account.Name), html.EscapeString(charge.Title), formatting.FormatMoney(charge.DueCents()))
	if charge.DiscountCents > 0 {
		text += fmt.Sprintf(" (скидка %s)", formatting.FormatMoney(charge.DiscountCents))
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

func roleName(role model.Role) string {
	switch role {
	case model.RoleInstructor:
		return "инструктор"
	case model.RoleAdmin:
		return "администратор"
	}
	return "родитель"
}
