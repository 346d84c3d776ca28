package common

import (
	"errors"

	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/Freeeeeet/mentor_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNotAMentor        = errors.New("user is not a mentor")
	ErrNoMessage         = errors.New("no message in callback")
	ErrInvalidFormat     = errors.New("invalid callback format")
	ErrDraftNotFound     = errors.New("booking draft not found")
	ErrPaymentInProgress = errors.New("payment in progress")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var declined *payment.DeclinedError

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNotAMentor):
		return "❌ Эта функция доступна только менторам"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDraftNotFound):
		return "⌛️ Форма устарела. Откройте ментора заново: /mentors"
	case errors.Is(err, ErrPaymentInProgress), errors.Is(err, service.ErrSubmissionInProgress):
		return "⏳ Оплата уже выполняется, дождитесь результата"
	case errors.Is(err, service.ErrMentorNotFound):
		return "❌ Ментор не найден"
	case errors.Is(err, service.ErrMentorInactive):
		return "⏸ Ментор сейчас не принимает записи"
	case service.IsValidationError(err):
		return "⚠️ " + service.ValidationMessage(err)
	case errors.As(err, &declined):
		if declined.Message != "" {
			return "❌ Оплата не прошла: " + declined.Message
		}
		return "❌ Оплата не прошла"
	case errors.Is(err, payment.ErrUnavailable):
		return "❌ Платёжный сервис недоступен. Попробуйте позже."
	default:
		return "❌ Произошла ошибка"
	}
}
