package service

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/go-playground/validator/v10"
)

// Ошибки проверки формы перед отправкой
var (
	ErrMentorRequired = errors.New("mentor is required")
	ErrDateRequired   = errors.New("date is required")
	ErrTimeRequired   = errors.New("time slot is required")
	ErrTopicRequired  = errors.New("topic is required")
	ErrGoalsRequired  = errors.New("goals are required")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldErrors сопоставляет поле черновика с ошибкой; показывается первая ошибка по порядку полей
var fieldErrors = map[string]error{
	"MentorID":        ErrMentorRequired,
	"Date":            ErrDateRequired,
	"TimeSlot":        ErrTimeRequired,
	"DurationMinutes": ErrInvalidDuration,
	"Topic":           ErrTopicRequired,
	"Goals":           ErrGoalsRequired,
}

// ValidateDraft проверяет черновик перед оплатой.
// Тема и цели проверяются после обрезки пробелов, время должно быть выбрано.
func ValidateDraft(draft *model.BookingDraft) error {
	trimmed := *draft
	trimmed.TimeSlot = strings.TrimSpace(trimmed.TimeSlot)
	trimmed.Topic = strings.TrimSpace(trimmed.Topic)
	trimmed.Goals = strings.TrimSpace(trimmed.Goals)

	err := validate.Struct(&trimmed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	if mapped, ok := fieldErrors[verrs[0].StructField()]; ok {
		return mapped
	}
	return err
}

// ValidationMessage возвращает текст для пользователя по ошибке проверки
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMentorRequired):
		return "Выберите ментора"
	case errors.Is(err, ErrDateRequired):
		return "Выберите дату сессии"
	case errors.Is(err, ErrTimeRequired):
		return "Выберите время сессии"
	case errors.Is(err, ErrInvalidDuration):
		return "Выберите длительность: 30, 60, 90 или 120 минут"
	case errors.Is(err, ErrTopicRequired):
		return "Укажите тему сессии"
	case errors.Is(err, ErrGoalsRequired):
		return "Опишите цели сессии"
	default:
		return "Проверьте заполнение формы"
	}
}

// IsValidationError проверяет, что ошибка пришла из проверки формы
func IsValidationError(err error) bool {
	for _, e := range fieldErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
