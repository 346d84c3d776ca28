package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.00 ₽", FormatAmount(decimal.NewFromInt(1500)))
	assert.Equal(t, "1234.57 ₽", FormatAmount(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "1500 ₽", FormatAmountShort(decimal.NewFromInt(1500)))
	assert.Equal(t, "999.50 ₽", FormatAmountShort(decimal.RequireFromString("999.5")))
	assert.Equal(t, "2000 ₽/час", FormatHourlyRate(decimal.NewFromInt(2000)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 мин", FormatDuration(30))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
	assert.Equal(t, "2 ч", FormatDuration(120))
}

func TestFormatDates(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Пн, 02.03.2026", FormatDateWithWeekday(monday))
	assert.Equal(t, "Пн 02.03", FormatDateButton(monday))
	assert.Equal(t, "Пн, 02.03.2026", FormatSessionDate("2026-03-02"))
	assert.Equal(t, "not-a-date", FormatSessionDate("not-a-date"))
}

func TestGetSessionStatusDisplay(t *testing.T) {
	assert.Equal(t, "✅", GetSessionStatusDisplay(model.SessionStatusConfirmed).Emoji)
	assert.Equal(t, "Неизвестно", GetSessionStatusDisplay("other").Text)
}

func TestPluralizeSessions(t *testing.T) {
	cases := map[int]string{
		1:   "сессия",
		2:   "сессии",
		5:   "сессий",
		11:  "сессий",
		21:  "сессия",
		22:  "сессии",
		112: "сессий",
	}
	for count, want := range cases {
		assert.Equal(t, want, PluralizeSessions(count), "count %d", count)
	}
	assert.Equal(t, "ментора", PluralizeMentors(3))
}
