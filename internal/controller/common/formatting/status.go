package formatting

import (
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
	"github.com/popiko/lessons_bot/internal/service"
)

// StatusDisplay emoji и подпись статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// SlotDisplay как слот выглядит для роли
func SlotDisplay(c schedule.Classification, role model.Role) StatusDisplay {
	switch service.DisplayStatus(c, role) {
	case "available":
		return StatusDisplay{"🟢", "Свободно"}
	case "booked":
		return StatusDisplay{"🔵", "Ваша запись"}
	case "reserved":
		return StatusDisplay{"🟠", "Занято"}
	}
	return StatusDisplay{"⚪️", "Недоступно"}
}

// BookingDisplay статус записи на урок
func BookingDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusBooked:    {"📅", "Записан"},
		model.BookingStatusCompleted: {"✅", "Проведён"},
		model.BookingStatusCancelled: {"❌", "Отменён"},
		model.BookingStatusNoShow:    {"🚫", "Не пришёл"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}
