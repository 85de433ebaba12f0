package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/model"
)

const parentHelp = "/available - Свободные уроки\n" +
	"/week - Расписание недели\n" +
	"/mylessons - Мои уроки\n" +
	"/addchild - Добавить ребёнка\n" +
	"/progress - Прогресс плавания\n" +
	"/charges [ММ.ГГГГ] - Начисления за месяц\n"

const staffHelp = "\nДля инструкторов:\n" +
	"/agenda [ДД.ММ] - Уроки на день\n" +
	"/open - Уроки со свободными инструкторами\n" +
	"/windows - Мои окна\n" +
	"/addwindow Sat 10:00 14:00 [summer] - Добавить окно\n"

const adminHelp = "\nДля администраторов:\n" +
	"/reserve <telegram_id> Mon 13:15 13:45 [id инструктора] - Постоянная бронь\n" +
	"/reservations - Постоянные брони\n" +
	"/promote <telegram_id> instructor|admin|parent - Назначить роль\n" +
	"/staff - Список инструкторов\n" +
	"/clients - Клиенты\n" +
	"/charge <telegram_id> <сумма> <скидка> <название> - Начислить оплату\n"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	account, created, err := h.accountService.Register(ctx, common.TelegramUserOf(update.Message.From))
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	greeting := "👋 С возвращением"
	if created {
		greeting = "👋 Добро пожаловать"
	}

	text := fmt.Sprintf("%s, %s!\n\nЭто бот записи на уроки плавания.\n\n%s",
		greeting, html.EscapeString(account.Name), helpText(account.Role))

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, _, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "📚 Справка по командам:\n\n"+helpText(session.Role), nil)
}

func helpText(role model.Role) string {
	text := parentHelp
	if role.IsStaff() {
		text += staffHelp
	}
	if role == model.RoleAdmin {
		text += adminHelp
	}
	return html.EscapeString(text) + "\n/cancel - Отменить текущий ввод"
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateAwaitChildName:
		h.handleChildName(ctx, b, update)
	case state.StateAwaitNote:
		h.handleNoteText(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
