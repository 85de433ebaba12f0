package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeLessons склонение слова "урок"
func PluralizeLessons(count int) string {
	return pluralize(count, "урок", "урока", "уроков")
}

// PluralizeSlots склонение слова "окно"
func PluralizeSlots(count int) string {
	return pluralize(count, "окно", "окна", "окон")
}

// PluralizeInstructors склонение слова "инструктор"
func PluralizeInstructors(count int) string {
	return pluralize(count, "инструктор", "инструктора", "инструкторов")
}
