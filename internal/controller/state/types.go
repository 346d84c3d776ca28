package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Форма записи на сессию
	StateBookingForm  UserState = "booking_form"
	StateBookingTopic UserState = "booking_topic"
	StateBookingGoals UserState = "booking_goals"

	// Регистрация ментора
	StateBecomeMentorRate UserState = "become_mentor_rate"
	StateBecomeMentorBio  UserState = "become_mentor_bio"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
