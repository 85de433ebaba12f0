package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

var errUsage = errors.New("wrong command arguments")

// commandArgs слова после команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// weeklyTime день недели и время суток из аргументов вида "Sat 10:00 14:00"
type weeklyTime struct {
	weekday time.Weekday
	start   schedule.TimeOfDay
	end     schedule.TimeOfDay
}

func parseWeeklyTime(args []string) (weeklyTime, error) {
	if len(args) != 3 {
		return weeklyTime{}, errUsage
	}

	weekday, err := schedule.ParseWeekday(args[0])
	if err != nil {
		return weeklyTime{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	start, err := schedule.ParseTimeOfDay(args[1])
	if err != nil {
		return weeklyTime{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	end, err := schedule.ParseTimeOfDay(args[2])
	if err != nil {
		return weeklyTime{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if !start.Before(end) {
		return weeklyTime{}, fmt.Errorf("%w: end %s is not after start %s", errUsage, end, start)
	}

	return weeklyTime{weekday: weekday, start: start, end: end}, nil
}

// parseWindowArgs "/addwindow Sat 10:00 14:00 [summer]"
func parseWindowArgs(args []string) (weeklyTime, bool, error) {
	summer := false
	if len(args) == 4 {
		switch strings.ToLower(args[3]) {
		case "summer", "лето":
			summer = true
		default:
			return weeklyTime{}, false, errUsage
		}
		args = args[:3]
	}

	wt, err := parseWeeklyTime(args)
	return wt, summer, err
}

type reserveArgs struct {
	ownerTelegramID      int64
	instructorTelegramID *int64
	time                 weeklyTime
}

// parseReserveArgs "/reserve 123456789 Mon 13:15 13:45 [987654321]", последний аргумент инструктор
func parseReserveArgs(args []string) (reserveArgs, error) {
	if len(args) != 4 && len(args) != 5 {
		return reserveArgs{}, errUsage
	}

	var out reserveArgs
	var err error
	if out.ownerTelegramID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
		return reserveArgs{}, fmt.Errorf("%w: telegram id %q", errUsage, args[0])
	}

	if out.time, err = parseWeeklyTime(args[1:4]); err != nil {
		return reserveArgs{}, err
	}

	if len(args) == 5 {
		instructorID, err := strconv.ParseInt(args[4], 10, 64)
		if err != nil {
			return reserveArgs{}, fmt.Errorf("%w: instructor id %q", errUsage, args[4])
		}
		out.instructorTelegramID = &instructorID
	}

	return out, nil
}

// parsePromoteArgs "/promote 123456789 instructor"
func parsePromoteArgs(args []string) (int64, model.Role, error) {
	if len(args) != 2 {
		return 0, "", errUsage
	}

	telegramID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: telegram id %q", errUsage, args[0])
	}

	role := model.Role(strings.ToLower(args[1]))
	switch role {
	case model.RoleParent, model.RoleInstructor, model.RoleAdmin:
	default:
		return 0, "", fmt.Errorf("%w: role %q", errUsage, args[1])
	}

	return telegramID, role, nil
}

// parseAgendaDay "/agenda", "/agenda 05.07" или "/agenda 05.07.2025". Без даты сегодня
func parseAgendaDay(args []string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if len(args) == 0 {
		return today, nil
	}
	if len(args) > 1 {
		return time.Time{}, errUsage
	}

	if day, err := time.ParseInLocation("02.01.2006", args[0], now.Location()); err == nil {
		return day, nil
	}
	day, err := time.ParseInLocation("02.01", args[0], now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", errUsage, args[0])
	}
	return time.Date(now.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location()), nil
}

// parseMoney сумма в долларах "175", "175.5" или "175,50" в центах
func parseMoney(s string) (int64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", "."), "$")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: amount %q", errUsage, s)
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("%w: amount %q", errUsage, s)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil || cents < 0 {
			return 0, fmt.Errorf("%w: amount %q", errUsage, s)
		}
	}
	return dollars*100 + cents, nil
}

type chargeArgs struct {
	telegramID    int64
	amountCents   int64
	discountCents int64
	title         string
}

// parseChargeArgs "/charge 123456789 40 5 Абонемент июль"
func parseChargeArgs(args []string) (chargeArgs, error) {
	if len(args) < 4 {
		return chargeArgs{}, errUsage
	}

	var out chargeArgs
	var err error
	if out.telegramID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
		return chargeArgs{}, fmt.Errorf("%w: telegram id %q", errUsage, args[0])
	}
	if out.amountCents, err = parseMoney(args[1]); err != nil {
		return chargeArgs{}, err
	}
	if out.discountCents, err = parseMoney(args[2]); err != nil {
		return chargeArgs{}, err
	}
	out.title = strings.Join(args[3:], " ")

	return out, nil
}

// parseMonth "/charges" или "/charges 07.2025". Без аргумента текущий месяц
func parseMonth(args []string, now time.Time) (time.Time, error) {
	if len(args) == 0 {
		return now, nil
	}
	if len(args) > 1 {
		return time.Time{}, errUsage
	}
	month, err := time.ParseInLocation("01.2006", args[0], now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q", errUsage, args[0])
	}
	return month, nil
}
