package schedule

import "time"

// GenerateSlots перечисляет все слоты шаблона в диапазоне [startDate, endDate] включительно.
// Порядок: по дате, внутри дня по времени начала. Дубликаты не схлопываются.
// Если startDate позже endDate, результат пустой
func GenerateSlots(startDate, endDate time.Time, resolver Resolver) []TimeSlot {
	from := dateOf(startDate)
	to := dateOf(endDate)
	if from.After(to) {
		return nil
	}

	var slots []TimeSlot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		rule := resolver.ResolveDayRule(day)
		if !rule.Active {
			continue
		}

		for _, startTime := range rule.StartTimes {
			start := startTime.On(day)
			slots = append(slots, TimeSlot{
				Start: start,
				End:   start.Add(rule.Duration()),
			})
		}
	}

	return slots
}
