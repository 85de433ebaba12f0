package formatting

import (
	"fmt"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDayMonth дата без года и день недели: "Сб 05.07"
func FormatDayMonth(t time.Time) string {
	return WeekdayShort(t.Weekday()) + " " + t.Format("02.01")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatLesson "Сб 05.07, 10:15–10:45" в часовом поясе loc
func FormatLesson(start, end time.Time, loc *time.Location) string {
	start, end = start.In(loc), end.In(loc)
	return FormatDayMonth(start) + ", " + FormatTimeRange(start, end)
}

var weekdayNames = [...]string{"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}

var weekdayShortNames = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// WeekdayName полное название дня недели
func WeekdayName(wd time.Weekday) string {
	if wd >= 0 && int(wd) < len(weekdayNames) {
		return weekdayNames[wd]
	}
	return "Неизвестно"
}

// WeekdayShort краткое название дня недели
func WeekdayShort(wd time.Weekday) string {
	if wd >= 0 && int(wd) < len(weekdayShortNames) {
		return weekdayShortNames[wd]
	}
	return "?"
}

// MonthName название месяца в именительном падеже
func MonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}

// WeekStart понедельник недели, в которую попадает t
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
