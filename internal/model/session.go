package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionStatusConfirmed SessionStatus = "confirmed" // Оплачена и подтверждена
)

// Форматы даты и времени в записи о сессии
const (
	SessionDateLayout = "2006-01-02"
	SessionTimeLayout = "15:04"
)

// BookingDraft черновик формы записи на сессию.
// Меняется при каждом редактировании поля, сумма пересчитывается при смене длительности.
type BookingDraft struct {
	MentorID        int64           `json:"mentor_id" validate:"required"`
	MentorName      string          `json:"mentor_name"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Date            time.Time       `json:"date" validate:"required"`
	TimeSlot        string          `json:"time_slot" validate:"required"` // "15:04"
	DurationMinutes int             `json:"duration_minutes" validate:"oneof=30 60 90 120"`
	Topic           string          `json:"topic" validate:"required"`
	Goals           string          `json:"goals" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

// SessionRecord подтверждённая запись, сохраняется только добавлением
type SessionRecord struct {
	ID              uuid.UUID       `json:"id"`
	StudentID       int64           `json:"student_id"` // telegram id ученика
	MentorID        int64           `json:"mentor_id"`
	MentorName      string          `json:"mentor_name"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	DurationMinutes int             `json:"duration"`
	Topic           string          `json:"topic"`
	Goals           string          `json:"goals"`
	Amount          decimal.Decimal `json:"amount"`
	Status          SessionStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
