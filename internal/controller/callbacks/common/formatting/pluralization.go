package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSessions возвращает правильное склонение слова "сессия"
func PluralizeSessions(count int) string {
	return pluralize(count, "сессия", "сессии", "сессий")
}

// PluralizeMentors возвращает правильное склонение слова "ментор"
func PluralizeMentors(count int) string {
	return pluralize(count, "ментор", "ментора", "менторов")
}
