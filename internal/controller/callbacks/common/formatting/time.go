package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с коротким днём недели: "Пн, 02.03.2026"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s, %s", GetWeekdayShortName(int(t.Weekday())), FormatDate(t))
}

// FormatDateButton короткая подпись даты для кнопки: "Пн 02.03"
func FormatDateButton(t time.Time) string {
	return fmt.Sprintf("%s %s", GetWeekdayShortName(int(t.Weekday())), t.Format("02.01"))
}

// FormatSessionDate переводит дату записи из формата хранения в формат показа
func FormatSessionDate(raw string) string {
	t, err := time.Parse(model.SessionDateLayout, raw)
	if err != nil {
		return raw
	}
	return FormatDateWithWeekday(t)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
