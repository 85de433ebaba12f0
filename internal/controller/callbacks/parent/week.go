package parent

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
)

// HandleWeekPage листает картинку недели: новое фото, старое удаляется
func HandleWeekPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	offset, err := common.ParseWeekData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, d, func(hc *common.HandlerContext) {
		if hc.Message == nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoMessage))
			return
		}

		if err := d.SendWeek(ctx, b, hc.ChatID, hc.Session, offset); err != nil {
			d.Logger.Error("Failed to send week", zap.Int("offset", offset), zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    hc.ChatID,
			MessageID: hc.Message.ID,
		})
		hc.Answer("")
	})
}
