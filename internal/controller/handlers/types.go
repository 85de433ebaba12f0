package handlers

import (
	"go.uber.org/zap"

	"github.com/popiko/lessons_bot/internal/controller/common"
	"github.com/popiko/lessons_bot/internal/controller/state"
	"github.com/popiko/lessons_bot/internal/service"
)

// Handlers обработчики команд и текстовых сообщений
type Handlers struct {
	deps                *common.Deps
	accountService      *service.AccountService
	availabilityService *service.AvailabilityService
	bookingService      *service.BookingService
	chargeService       *service.ChargeService
	instructorService   *service.InstructorService
	reservationService  *service.ReservationService
	stateManager        *state.Manager
	logger              *zap.Logger
}

// NewHandlers создаёт обработчики поверх общих зависимостей
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{
		deps:                deps,
		accountService:      deps.Accounts,
		availabilityService: deps.Availability,
		bookingService:      deps.Bookings,
		chargeService:       deps.Charges,
		instructorService:   deps.Instructors,
		reservationService:  deps.Reservations,
		stateManager:        deps.State,
		logger:              deps.Logger,
	}
}
