package staff

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/model"
)

// HandleRemoveWindow удаляет окно из /windows
func HandleRemoveWindow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	windowID, err := common.ParseIDData(common.PrefixWindowOff, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		if err := d.Instructors.RemoveWindow(ctx, hc.Session, hc.Session.AccountID, windowID); err != nil {
			d.Logger.Warn("Failed to remove window",
				zap.String("window_id", windowID.String()),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("🗑 Окно удалено")

		windows, err := d.Instructors.Windows(ctx, hc.Session.AccountID)
		if err != nil {
			d.Logger.Error("Failed to reload windows", zap.Error(err))
			return
		}
		text, keyboard := common.BuildWindowsScreen(windows)
		if err := hc.EditMessage(text, keyboard); err != nil {
			d.Logger.Error("Failed to edit windows message", zap.Error(err))
		}
	})
}

// HandleDeactivateReservation отключает постоянную бронь из /reservations
func HandleDeactivateReservation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	reservationID, err := common.ParseIDData(common.PrefixReservationOff, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		if err := d.Reservations.Deactivate(ctx, hc.Session, reservationID); err != nil {
			d.Logger.Warn("Failed to deactivate reservation",
				zap.String("reservation_id", reservationID.String()),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("⏹ Бронь отключена")

		reservations, err := d.Reservations.List(ctx, hc.Session)
		if err != nil {
			d.Logger.Error("Failed to reload reservations", zap.Error(err))
			return
		}
		text, keyboard := common.BuildReservationsScreen(reservations, hc.Session.Role == model.RoleAdmin)
		if err := hc.EditMessage(text, keyboard); err != nil {
			d.Logger.Error("Failed to edit reservations message", zap.Error(err))
		}
	})
}
