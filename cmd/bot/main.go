package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/app"
	"github.com/popiko/lessons_bot/internal/config"
	"github.com/popiko/lessons_bot/internal/controller"
	"github.com/popiko/lessons_bot/internal/repository"
	"github.com/popiko/lessons_bot/internal/schedule"
	"github.com/popiko/lessons_bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting lessons bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Location.String()),
		zap.String("overlap_policy", cfg.OverlapPolicy))

	template, err := loadTemplate(cfg.ScheduleTemplatePath)
	if err != nil {
		return err
	}
	policy, err := schedule.ParseOverlapPolicy(cfg.OverlapPolicy)
	if err != nil {
		return err
	}
	engine := schedule.NewEngine(template, policy)

	pool, err := app.OpenPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	accountRepo := repository.NewAccountRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool, logger)
	reservationRepo := repository.NewReservationRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	chargeRepo := repository.NewChargeRepository(pool)

	// Сервисы
	accountService := service.NewAccountService(accountRepo, cfg.AdminTelegramIDs, logger)
	availabilityService := service.NewAvailabilityService(engine, bookingRepo, reservationRepo, availabilityRepo, cfg.Location, logger)
	bookingService := service.NewBookingService(availabilityService, bookingRepo, accountRepo, cfg.BookingHorizonDays, logger)
	instructorService := service.NewInstructorService(bookingRepo, availabilityRepo, noteRepo, accountRepo, cfg.Location, logger)
	reservationService := service.NewReservationService(reservationRepo, logger)
	chargeService := service.NewChargeService(chargeRepo, accountRepo, cfg.Location, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, controller.Services{
		Accounts:     accountService,
		Availability: availabilityService,
		Bookings:     bookingService,
		Charges:      chargeService,
		Instructors:  instructorService,
		Reservations: reservationService,
	}, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	digest := service.NewAgendaDigest(accountRepo, instructorService, controller.NewTelegramNotifier(b), cfg.Location, logger)
	scheduler := app.NewScheduler(digest, cfg.AgendaHour, cfg.Location, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	botController.Start(ctx)
	logger.Info("Bot stopped")
	return nil
}

// loadTemplate шаблон из YAML-файла, без пути встроенный
func loadTemplate(path string) (*schedule.Template, error) {
	if path == "" {
		return schedule.DefaultTemplate(), nil
	}
	return schedule.LoadTemplateFile(path)
}
