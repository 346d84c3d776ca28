package common

import (
	"fmt"
	"time"
)

// Callback data экранов менторов и формы записи
const (
	CallbackMentorsPage   = "mentors_page:"
	CallbackMentorProfile = "mentor_profile:"
	CallbackBookMentor    = "book_mentor:"
	CallbackMySessions    = "my_sessions"
	CallbackMentorToggle  = "mentor_toggle_active"

	CallbackFormShow        = "form_show"
	CallbackFormDate        = "form_date"
	CallbackFormSetDate     = "form_set_date:"
	CallbackFormTime        = "form_time"
	CallbackFormSetTime     = "form_set_time:"
	CallbackFormDuration    = "form_duration"
	CallbackFormSetDuration = "form_set_duration:"
	CallbackFormTopic       = "form_topic"
	CallbackFormGoals       = "form_goals"
	CallbackFormSubmit      = "form_submit"
	CallbackFormCancel      = "form_cancel"
)

// Параметры выбора даты и времени в форме
const (
	BookingDaysAhead = 14
	FirstSlotHour    = 9
	LastSlotHour     = 20
)

// TimeSlots возвращает доступные слоты начала сессии: каждый час с 09:00 до 20:00
func TimeSlots() []string {
	slots := make([]string, 0, LastSlotHour-FirstSlotHour+1)
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

// IsTimeSlot проверяет, что время есть среди слотов формы
func IsTimeSlot(value string) bool {
	for _, slot := range TimeSlots() {
		if slot == value {
			return true
		}
	}
	return false
}

// BookingDates возвращает даты, доступные для записи, начиная с сегодняшней
func BookingDates(today time.Time) []time.Time {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	dates := make([]time.Time, 0, BookingDaysAhead)
	for i := 0; i < BookingDaysAhead; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}
