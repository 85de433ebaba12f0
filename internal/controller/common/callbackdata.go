package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/popiko/lessons_bot/internal/model"
)

// Форматы callback data. Telegram ограничивает данные 64 байтами
const (
	PrefixBook           = "book:"    // book:<unix>:<childID или ->
	PrefixCancelBooking  = "cancelb:" // cancelb:<bookingID>
	PrefixOutcome        = "outcome:" // outcome:<bookingID>:<status>
	PrefixNote           = "note:"    // note:<childID>
	PrefixWeek           = "week:"    // week:<смещение в неделях>
	PrefixReservationOff = "resoff:"  // resoff:<reservationID>
	PrefixWindowOff      = "winoff:"  // winoff:<windowID>
	PrefixSkill          = "skill:"   // skill:<childID>
	PrefixClient         = "client:"  // client:<accountID>

	Noop = "noop"
)

const noChild = "-"

// BookData кнопка записи на слот
func BookData(start time.Time, childID *uuid.UUID) string {
	child := noChild
	if childID != nil {
		child = childID.String()
	}
	return fmt.Sprintf("%s%d:%s", PrefixBook, start.Unix(), child)
}

// ParseBookData обратное к BookData
func ParseBookData(data string) (time.Time, *uuid.UUID, error) {
	parts := strings.Split(strings.TrimPrefix(data, PrefixBook), ":")
	if !strings.HasPrefix(data, PrefixBook) || len(parts) != 2 {
		return time.Time{}, nil, ErrInvalidFormat
	}

	unix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parse start: %w", ErrInvalidFormat)
	}
	start := time.Unix(unix, 0)

	if parts[1] == noChild {
		return start, nil, nil
	}
	childID, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parse child id: %w", ErrInvalidFormat)
	}
	return start, &childID, nil
}

// IDData кнопка с одним идентификатором после префикса
func IDData(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// ParseIDData обратное к IDData
func ParseIDData(prefix, data string) (uuid.UUID, error) {
	if !strings.HasPrefix(data, prefix) {
		return uuid.Nil, ErrInvalidFormat
	}
	id, err := uuid.Parse(strings.TrimPrefix(data, prefix))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id: %w", ErrInvalidFormat)
	}
	return id, nil
}

// OutcomeData кнопка итога урока
func OutcomeData(bookingID uuid.UUID, status model.BookingStatus) string {
	return PrefixOutcome + bookingID.String() + ":" + string(status)
}

// ParseOutcomeData обратное к OutcomeData
func ParseOutcomeData(data string) (uuid.UUID, model.BookingStatus, error) {
	parts := strings.Split(strings.TrimPrefix(data, PrefixOutcome), ":")
	if !strings.HasPrefix(data, PrefixOutcome) || len(parts) != 2 {
		return uuid.Nil, "", ErrInvalidFormat
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("parse booking id: %w", ErrInvalidFormat)
	}
	status := model.BookingStatus(parts[1])
	if !status.IsValid() {
		return uuid.Nil, "", fmt.Errorf("unknown status %q: %w", parts[1], ErrInvalidFormat)
	}
	return id, status, nil
}

// WeekData кнопка навигации по неделям
func WeekData(offset int) string {
	return PrefixWeek + strconv.Itoa(offset)
}

// ParseWeekData обратное к WeekData
func ParseWeekData(data string) (int, error) {
	if !strings.HasPrefix(data, PrefixWeek) {
		return 0, ErrInvalidFormat
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(data, PrefixWeek))
	if err != nil {
		return 0, fmt.Errorf("parse week offset: %w", ErrInvalidFormat)
	}
	return offset, nil
}
