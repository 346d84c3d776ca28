package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Длительности сессии, доступные в форме записи (в минутах)
var SupportedDurations = []int{30, 60, 90, 120}

// DefaultDuration длительность в новом черновике
const DefaultDuration = 60

var ErrInvalidDuration = errors.New("unsupported session duration")

var minutesPerHour = decimal.NewFromInt(60)

// SessionAmount считает стоимость сессии: почасовая ставка × минуты / 60, округление до копеек
func SessionAmount(hourlyRate decimal.Decimal, minutes int) decimal.Decimal {
	return hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour).Round(2)
}

// IsSupportedDuration проверяет, что длительность есть в списке формы
func IsSupportedDuration(minutes int) bool {
	for _, d := range SupportedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
