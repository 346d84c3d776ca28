package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mentor профиль ментора, доступного для записи
type Mentor struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Bio         string          `json:"bio"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"` // в рублях, в БД хранится в копейках
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}
