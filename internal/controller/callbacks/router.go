package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/callbacks/parent"
	"github.com/popiko/lessons_bot/internal/controller/callbacks/staff"
	"github.com/popiko/lessons_bot/internal/controller/common"
)

// Handler обработчик нажатий на inline кнопки
type Handler struct {
	deps *common.Deps
}

// NewHandler создаёт обработчик callbacks с зависимостями
func NewHandler(deps *common.Deps) *Handler {
	return &Handler{deps: deps}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.deps)
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	data := callback.Data

	d.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Parent =====
	case strings.HasPrefix(data, common.PrefixBook):
		parent.HandleBook(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixCancelBooking):
		parent.HandleCancelBooking(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixWeek):
		parent.HandleWeekPage(ctx, b, callback, d)

	// ===== Staff =====
	case strings.HasPrefix(data, common.PrefixOutcome):
		staff.HandleOutcome(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixNote):
		staff.HandleNote(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixSkill):
		staff.HandleAdvanceSkill(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixWindowOff):
		staff.HandleRemoveWindow(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixReservationOff):
		staff.HandleDeactivateReservation(ctx, b, callback, d)
	case strings.HasPrefix(data, common.PrefixClient):
		staff.HandleClientCard(ctx, b, callback, d)

	default:
		d.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестная команда")
	}
}
