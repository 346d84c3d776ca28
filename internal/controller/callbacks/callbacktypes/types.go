package callbacktypes

import (
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// Состояния, которые выставляют callback handlers; значения совпадают с state.UserState
const (
	StateNone             UserState = ""
	StateBookingForm      UserState = "booking_form"
	StateBookingTopic     UserState = "booking_topic"
	StateBookingGoals     UserState = "booking_goals"
	StateBecomeMentorRate UserState = "become_mentor_rate"
)

// Ключи данных состояния формы записи
const (
	DraftKey       = "draft"
	FormMessageKey = "form_message_id" // сообщение с формой, которое обновляется после ввода текста
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	TakeData(telegramID int64, key string) (interface{}, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    *service.UserService
	BookingService *service.BookingService
	MentorService  *service.MentorService
	StateManager   StateManager
	Logger         *zap.Logger
}
