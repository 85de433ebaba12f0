package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/callbacks"
	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/handlers"
	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// Services сервисы, с которыми работает бот
type Services struct {
	Accounts     *service.AccountService
	Availability *service.AvailabilityService
	Bookings     *service.BookingService
	Charges      *service.ChargeService
	Instructors  *service.InstructorService
	Reservations *service.ReservationService
}

func NewBotController(botInstance *bot.Bot, services Services, logger *zap.Logger) *BotController {
	deps := &common.Deps{
		Accounts:     services.Accounts,
		Availability: services.Availability,
		Bookings:     services.Bookings,
		Charges:      services.Charges,
		Instructors:  services.Instructors,
		Reservations: services.Reservations,
		State:        state.NewManager(),
		Logger:       logger,
	}

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Родители
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/available", bot.MatchTypeExact, c.handlers.HandleAvailable)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mylessons", bot.MatchTypeExact, c.handlers.HandleMyLessons)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "addchild", bot.MatchTypeCommand, c.handlers.HandleAddChild)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/progress", bot.MatchTypeExact, c.handlers.HandleProgress)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "charges", bot.MatchTypeCommand, c.handlers.HandleCharges)

	// Инструкторы
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "agenda", bot.MatchTypeCommand, c.handlers.HandleAgenda)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/open", bot.MatchTypeExact, c.handlers.HandleOpenLessons)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/windows", bot.MatchTypeExact, c.handlers.HandleWindows)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "addwindow", bot.MatchTypeCommand, c.handlers.HandleAddWindow)

	// Администраторы
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "reserve", bot.MatchTypeCommand, c.handlers.HandleReserve)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reservations", bot.MatchTypeExact, c.handlers.HandleReservations)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "promote", bot.MatchTypeCommand, c.handlers.HandlePromote)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/staff", bot.MatchTypeExact, c.handlers.HandleStaff)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clients", bot.MatchTypeExact, c.handlers.HandleClients)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "charge", bot.MatchTypeCommand, c.handlers.HandleCharge)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "available", Description: "🏊 Свободные уроки"},
		{Command: "week", Description: "📅 Расписание недели"},
		{Command: "mylessons", Description: "📋 Мои уроки"},
		{Command: "addchild", Description: "👶 Добавить ребёнка"},
		{Command: "progress", Description: "🏅 Прогресс плавания"},
		{Command: "charges", Description: "💳 Начисления за месяц"},
		{Command: "agenda", Description: "🗓 Уроки на день (инструктор)"},
		{Command: "windows", Description: "🕒 Мои окна (инструктор)"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
