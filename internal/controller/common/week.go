package common

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/controller/render"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

// Дальше этого смещения неделю не листаем
const maxWeekOffset = 8

// SendWeek отправляет картинку недели со смещением offset от текущей
func (d *Deps) SendWeek(ctx context.Context, b *bot.Bot, chatID int64, session model.Session, offset int) error {
	offset = min(max(offset, 0), maxWeekOffset)

	loc := d.Availability.Location()
	now := time.Now().In(loc)
	from := formatting.WeekStart(now).AddDate(0, 0, 7*offset)
	to := from.AddDate(0, 0, 6)

	slots, err := d.Availability.Week(ctx, session, from, to)
	if err != nil {
		return fmt.Errorf("week slots: %w", err)
	}

	image, err := render.WeekImage(render.WeekInput{
		Slots:     slots,
		Role:      session.Role,
		WeekStart: from,
		Now:       now,
		Location:  loc,
	})
	if err != nil {
		return fmt.Errorf("render week: %w", err)
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
		Caption:     WeekCaption(from, slots),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: WeekKeyboard(offset),
	})
	return err
}

// WeekCaption подпись к картинке недели
func WeekCaption(from time.Time, slots []schedule.AnnotatedSlot) string {
	free := 0
	for _, s := range slots {
		if s.Classification == schedule.Available {
			free++
		}
	}
	to := from.AddDate(0, 0, 6)
	return fmt.Sprintf("📅 <b>Неделя %s - %s</b>\n🟢 Свободных уроков: %d\n\nЗаписаться: /available",
		from.Format("02.01"), to.Format("02.01"), free)
}
