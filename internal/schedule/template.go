package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Season режим расписания
type Season string

const (
	SeasonSummer Season = "summer"
	SeasonOff    Season = "off_season"
)

// DayRule расписание одного дня недели.
// Active == false означает что в этот день уроков нет
type DayRule struct {
	Weekday             time.Weekday
	Active              bool
	StartTimes          []TimeOfDay
	SlotDurationMinutes int
}

// Duration длительность слота
func (r DayRule) Duration() time.Duration {
	return time.Duration(r.SlotDurationMinutes) * time.Minute
}

// Resolver решает, какое расписание действует в указанную дату
type Resolver interface {
	ResolveDayRule(date time.Time) DayRule
}

// Template сезонный недельный шаблон расписания. После создания не меняется
type Template struct {
	summerMonths map[time.Month]bool
	rules        map[Season]map[time.Weekday]DayRule
}

// NewTemplate собирает шаблон и проверяет инварианты:
// длительность > 0, времена начала внутри дня различны, один день недели на сезон
func NewTemplate(summerMonths []time.Month, seasons map[Season][]DayRule) (*Template, error) {
	t := &Template{
		summerMonths: make(map[time.Month]bool, len(summerMonths)),
		rules:        make(map[Season]map[time.Weekday]DayRule, len(seasons)),
	}

	for _, m := range summerMonths {
		if m < time.January || m > time.December {
			return nil, fmt.Errorf("invalid summer month: %d", m)
		}
		t.summerMonths[m] = true
	}

	for season, dayRules := range seasons {
		if season != SeasonSummer && season != SeasonOff {
			return nil, fmt.Errorf("unknown season %q", season)
		}

		byDay := make(map[time.Weekday]DayRule, len(dayRules))
		for _, rule := range dayRules {
			if rule.Weekday < time.Sunday || rule.Weekday > time.Saturday {
				return nil, fmt.Errorf("season %s: invalid weekday %d", season, rule.Weekday)
			}
			if rule.SlotDurationMinutes <= 0 {
				return nil, fmt.Errorf("season %s, %s: slot duration must be positive", season, rule.Weekday)
			}
			if _, dup := byDay[rule.Weekday]; dup {
				return nil, fmt.Errorf("season %s: %s defined twice", season, rule.Weekday)
			}

			times := make([]TimeOfDay, len(rule.StartTimes))
			copy(times, rule.StartTimes)
			sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
			for i := 1; i < len(times); i++ {
				if times[i] == times[i-1] {
					return nil, fmt.Errorf("season %s, %s: duplicate start time %s", season, rule.Weekday, times[i])
				}
			}

			byDay[rule.Weekday] = DayRule{
				Weekday:             rule.Weekday,
				Active:              len(times) > 0,
				StartTimes:          times,
				SlotDurationMinutes: rule.SlotDurationMinutes,
			}
		}
		t.rules[season] = byDay
	}

	return t, nil
}

// SeasonOf определяет сезон по месяцу даты
func (t *Template) SeasonOf(date time.Time) Season {
	if t.summerMonths[date.Month()] {
		return SeasonSummer
	}
	return SeasonOff
}

// ResolveDayRule возвращает расписание на дату. Для дней без правил возвращается неактивный DayRule
func (t *Template) ResolveDayRule(date time.Time) DayRule {
	rule, ok := t.rules[t.SeasonOf(date)][date.Weekday()]
	if !ok || !rule.Active {
		return DayRule{Weekday: date.Weekday()}
	}

	times := make([]TimeOfDay, len(rule.StartTimes))
	copy(times, rule.StartTimes)
	rule.StartTimes = times
	return rule
}

// ActiveWeekdays дни недели с уроками в сезоне, по порядку с воскресенья
func (t *Template) ActiveWeekdays(season Season) []time.Weekday {
	var days []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if rule, ok := t.rules[season][wd]; ok && rule.Active {
			days = append(days, wd)
		}
	}
	return days
}

// DefaultTemplate расписание бассейна: летом будни (Пн, Вт, Чт) и выходные,
// вне сезона только выходные. Уроки по 30 минут
func DefaultTemplate() *Template {
	weekdayTimes := []TimeOfDay{
		MustTimeOfDay("13:15"), MustTimeOfDay("14:00"), MustTimeOfDay("14:45"),
		MustTimeOfDay("15:30"), MustTimeOfDay("16:15"), MustTimeOfDay("17:15"),
	}
	weekendTimes := []TimeOfDay{
		MustTimeOfDay("10:15"), MustTimeOfDay("11:00"), MustTimeOfDay("11:45"),
		MustTimeOfDay("12:30"), MustTimeOfDay("13:15"), MustTimeOfDay("14:00"),
		MustTimeOfDay("14:45"), MustTimeOfDay("15:45"), MustTimeOfDay("16:30"),
	}

	rules := func(days []time.Weekday, times []TimeOfDay) []DayRule {
		out := make([]DayRule, 0, len(days))
		for _, d := range days {
			out = append(out, DayRule{Weekday: d, StartTimes: times, SlotDurationMinutes: 30})
		}
		return out
	}

	weekend := []time.Weekday{time.Saturday, time.Sunday}
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Thursday}

	t, err := NewTemplate(
		[]time.Month{time.June, time.July, time.August},
		map[Season][]DayRule{
			SeasonSummer: append(rules(weekdays, weekdayTimes), rules(weekend, weekendTimes)...),
			SeasonOff:    rules(weekend, weekendTimes),
		},
	)
	if err != nil {
		panic("default schedule template is invalid: " + err.Error())
	}
	return t
}
