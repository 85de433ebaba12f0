package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/service"
)

// Deps общие зависимости обработчиков команд и callback
type Deps struct {
	Accounts     *service.AccountService
	Availability *service.AvailabilityService
	Bookings     *service.BookingService
	Charges      *service.ChargeService
	Instructors  *service.InstructorService
	Reservations *service.ReservationService
	State        *state.Manager
	Logger       *zap.Logger
}

// Session сессия пользователя Telegram. Незнакомый пользователь регистрируется на лету
func (d *Deps) Session(ctx context.Context, from *models.User) (model.Session, *model.Account, error) {
	if from == nil {
		return model.Session{}, nil, service.ErrAccountNotFound
	}

	session, account, err := d.Accounts.SessionForTelegram(ctx, from.ID)
	if !errors.Is(err, service.ErrAccountNotFound) {
		return session, account, err
	}

	if _, _, err := d.Accounts.Register(ctx, TelegramUserOf(from)); err != nil {
		return model.Session{}, nil, fmt.Errorf("register: %w", err)
	}
	return d.Accounts.SessionForTelegram(ctx, from.ID)
}

// TelegramUserOf данные пользователя для регистрации
func TelegramUserOf(from *models.User) service.TelegramUser {
	return service.TelegramUser{
		ID:           from.ID,
		Username:     from.Username,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
	}
}
