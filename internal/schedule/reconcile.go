package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// OverlapPolicy правило, по которому занятый интервал перекрывает слот
type OverlapPolicy string

const (
	// OverlapContainment слот занят, если его начало лежит в [s, e) или конец в (s, e].
	// Интервал, закончившийся ровно в начале слота, слот не занимает
	OverlapContainment OverlapPolicy = "containment"
	// OverlapIntersection обычное пересечение полуоткрытых интервалов
	OverlapIntersection OverlapPolicy = "intersection"
)

// ParseOverlapPolicy пустая строка даёт OverlapContainment
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch OverlapPolicy(s) {
	case "", OverlapContainment:
		return OverlapContainment, nil
	case OverlapIntersection:
		return OverlapIntersection, nil
	}
	return "", fmt.Errorf("unknown overlap policy %q", s)
}

// Occupies перекрывает ли интервал слот
func (p OverlapPolicy) Occupies(slot TimeSlot, interval BookedInterval) bool {
	if p == OverlapIntersection {
		return slot.Start.Before(interval.End) && interval.Start.Before(slot.End)
	}

	startInside := !slot.Start.Before(interval.Start) && slot.Start.Before(interval.End)
	endInside := slot.End.After(interval.Start) && !slot.End.After(interval.End)
	return startInside || endInside
}

// Engine вычисление доступных слотов. Состояния между вызовами не хранит
type Engine struct {
	template *Template
	policy   OverlapPolicy
}

// NewEngine создаёт движок поверх шаблона
func NewEngine(template *Template, policy OverlapPolicy) *Engine {
	if policy == "" {
		policy = OverlapContainment
	}
	return &Engine{template: template, policy: policy}
}

// Template шаблон, с которым работает движок
func (e *Engine) Template() *Template {
	return e.template
}

// ResolveDayRule расписание на конкретную дату
func (e *Engine) ResolveDayRule(date time.Time) DayRule {
	return e.template.ResolveDayRule(date)
}

// GenerateSlots все слоты шаблона в диапазоне дат
func (e *Engine) GenerateSlots(startDate, endDate time.Time) []TimeSlot {
	return GenerateSlots(startDate, endDate, e.template)
}

// Reconcile классифицирует каждый слот для зрителя. Порядок и количество совпадают со входом.
//
// Если windows == nil, инструкторы не учитываются: слот либо свободен, либо занят.
// Иначе слот свободен, только пока остаётся хотя бы один инструктор, чьё окно покрывает
// начало слота и у которого нет перекрывающей записи. Запись без инструктора занимает слот целиком
func (e *Engine) Reconcile(slots []TimeSlot, booked []BookedInterval, viewer Viewer, windows []InstructorWindow) []AnnotatedSlot {
	annotated := make([]AnnotatedSlot, 0, len(slots))
	for _, slot := range slots {
		annotated = append(annotated, e.classify(slot, booked, viewer, windows))
	}
	return annotated
}

func (e *Engine) classify(slot TimeSlot, booked []BookedInterval, viewer Viewer, windows []InstructorWindow) AnnotatedSlot {
	result := AnnotatedSlot{TimeSlot: slot}

	var bySelf, byOther, blocked bool
	busy := make(map[uuid.UUID]bool)

	for _, interval := range booked {
		if !interval.Status.Occupies() || !e.policy.Occupies(slot, interval) {
			continue
		}

		if viewer.Owns(interval.OwnerID) {
			bySelf = true
		} else {
			byOther = true
		}

		if interval.InstructorID == nil {
			blocked = true
		} else {
			busy[*interval.InstructorID] = true
		}
	}

	if bySelf {
		result.Classification = BookedBySelf
		return result
	}

	if windows == nil {
		if byOther {
			result.Classification = BookedByOther
		} else {
			result.Classification = Available
		}
		return result
	}

	var free []uuid.UUID
	if !blocked {
		for _, w := range windows {
			if !e.covers(w, slot) || busy[w.InstructorID] || containsID(free, w.InstructorID) {
				continue
			}
			free = append(free, w.InstructorID)
		}
	}

	switch {
	case len(free) > 0:
		result.Classification = Available
		result.AvailableInstructors = free
	case byOther:
		result.Classification = BookedByOther
	default:
		result.Classification = Unavailable
	}

	return result
}

// ReconcileInstructors режим агрегации по инструкторам.
//
// Для каждого слота и каждого покрывающего его окна получается кандидат; кандидаты с одинаковым
// началом (до минуты) сливаются в один слот со списком инструкторов. Запись, начинающаяся
// в ту же минуту и назначенная на одного из кандидатов, этого кандидата убирает; запись
// без инструктора убирает всех. Слот без
// кандидатов в результат не попадает. Результат упорядочен по началу
func (e *Engine) ReconcileInstructors(slots []TimeSlot, booked []BookedInterval, windows []InstructorWindow) []AnnotatedSlot {
	var merged []AnnotatedSlot
	index := make(map[int64]int)

	for _, slot := range slots {
		for _, w := range windows {
			if !e.covers(w, slot) {
				continue
			}

			key := minuteKey(slot.Start)
			i, ok := index[key]
			if !ok {
				merged = append(merged, AnnotatedSlot{TimeSlot: slot, Classification: Available})
				i = len(merged) - 1
				index[key] = i
			}

			if !containsID(merged[i].AvailableInstructors, w.InstructorID) {
				merged[i].AvailableInstructors = append(merged[i].AvailableInstructors, w.InstructorID)
			}
		}
	}

	for _, interval := range booked {
		if !interval.Status.Occupies() {
			continue
		}
		i, ok := index[minuteKey(interval.Start)]
		if !ok {
			continue
		}
		if interval.InstructorID == nil {
			merged[i].AvailableInstructors = nil
			continue
		}
		merged[i].AvailableInstructors = removeID(merged[i].AvailableInstructors, *interval.InstructorID)
	}

	result := make([]AnnotatedSlot, 0, len(merged))
	for _, slot := range merged {
		if len(slot.AvailableInstructors) > 0 {
			result = append(result, slot)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result
}

// covers покрывает ли окно инструктора начало слота: тот же день недели, тот же сезон,
// начало в [WindowStart, WindowEnd)
func (e *Engine) covers(w InstructorWindow, slot TimeSlot) bool {
	if w.Weekday != slot.Start.Weekday() {
		return false
	}
	if w.InSeason != (e.template.SeasonOf(slot.Start) == SeasonSummer) {
		return false
	}

	start := TimeOfDayOf(slot.Start)
	return !start.Before(w.WindowStart) && start.Before(w.WindowEnd)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
