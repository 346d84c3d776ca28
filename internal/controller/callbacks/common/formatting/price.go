package formatting

import "github.com/shopspring/decimal"

// FormatAmount форматирует сумму в рублях с копейками
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " ₽"
}

// FormatAmountShort форматирует сумму без копеек если они равны 0
func FormatAmountShort(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.StringFixed(0) + " ₽"
	}
	return amount.StringFixed(2) + " ₽"
}

// FormatHourlyRate форматирует почасовую ставку
func FormatHourlyRate(rate decimal.Decimal) string {
	return FormatAmountShort(rate) + "/час"
}
