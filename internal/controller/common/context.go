package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/popiko/lessons_bot/internal/model"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Deps       *Deps
	Message    *models.Message
	Session    model.Session
	Account    *model.Account
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, d *Deps) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Deps:       d,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession загружает сессию вызывающего
func (hc *HandlerContext) LoadSession() error {
	session, account, err := hc.Deps.Session(hc.Ctx, &hc.Callback.From)
	if err != nil {
		return err
	}
	hc.Session = session
	hc.Account = account
	return nil
}

// RequireStaff загружает сессию и проверяет, что вызывающий инструктор или администратор
func (hc *HandlerContext) RequireStaff() error {
	if hc.Account == nil {
		if err := hc.LoadSession(); err != nil {
			return err
		}
	}
	if !hc.Session.Role.IsStaff() {
		return ErrNotStaff
	}
	return nil
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение с кнопкой
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// SendMessage отправляет новое сообщение в тот же чат
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	return SendText(hc.Ctx, hc.Bot, hc.ChatID, text, keyboard)
}
