package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// TelegramNotifier доставляет служебные сообщения в личку Telegram
type TelegramNotifier struct {
	bot *bot.Bot
}

func NewTelegramNotifier(b *bot.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: b}
}

// Notify отправляет текст без разметки. В личном чате chat_id совпадает с telegram id
func (n *TelegramNotifier) Notify(ctx context.Context, telegramID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send to %d: %w", telegramID, err)
	}
	return nil
}
