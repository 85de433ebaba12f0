package staff

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
)

// HandleClientCard открывает карточку клиента из /clients
func HandleClientCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *common.Deps) {
	accountID, err := common.ParseIDData(common.PrefixClient, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithStaff(ctx, b, callback, d, func(hc *common.HandlerContext) {
		account, children, err := d.Accounts.Client(ctx, hc.Session, accountID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		childIDs := make([]uuid.UUID, 0, len(children))
		for _, c := range children {
			childIDs = append(childIDs, c.ID)
		}
		upcoming, err := d.Bookings.UpcomingOf(ctx, hc.Session, account.ID, childIDs)
		if err != nil {
			d.Logger.Error("Failed to load client lessons", zap.String("account_id", accountID.String()), zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		statement, err := d.Charges.Month(ctx, hc.Session, account.ID, d.Charges.CurrentMonth())
		if err != nil {
			d.Logger.Error("Failed to load client charges", zap.String("account_id", accountID.String()), zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("")
		text := common.BuildClientCard(account, children, upcoming, statement, d.Availability.Location())
		if err := hc.SendMessage(text, nil); err != nil {
			d.Logger.Error("Failed to send client card", zap.Error(err))
		}
	})
}
