package common

import (
	"errors"

	"github.com/popiko/lessons_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNotStaff      = errors.New("account is not staff")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSlotUnavailable):
		return "❌ Это время уже занято. Выберите другое: /available"
	case errors.Is(err, service.ErrSlotInPast):
		return "❌ Это время уже прошло"
	case errors.Is(err, service.ErrForbidden):
		return "❌ Недостаточно прав"
	case errors.Is(err, ErrNotStaff):
		return "❌ Эта функция доступна только инструкторам"
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Статус урока уже изменён"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, service.ErrAccountNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrChildNotFound):
		return "❌ Ребёнок не найден"
	case errors.Is(err, service.ErrProgramComplete):
		return "🏆 Программа пройдена полностью"
	case errors.Is(err, service.ErrInvalidInput):
		return "❌ Неверные данные"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
