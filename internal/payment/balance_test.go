package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	cases := map[string]string{
		"1 234,56 ₽":  "1234.56",
		"$1,234.56":   "1234.56",
		"1.234,56 €":  "1234.56",
		"1234.5":      "1234.5",
		"1,234":       "1234",
		"975,5":       "975.5",
		"-10.00 RUB":  "-10",
		"0":           "0",
		"12 000 ₽":    "12000",
		"₽ 1 000 000": "1000000",
		"1.234":       "1234",
		"1.234.567 ₽": "1234567",
		"1,234,567 ₽": "1234567",
		"975.5":       "975.5",
		"12.5678":     "12.5678",
		"3500.005":    "3500.005",
		"0,125":       "0.125",
	}

	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			got, err := ParseBalance(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got.String())
		})
	}
}

func TestParseBalanceRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "₽", "нет данных", "-", "1.23.456", "1,2345,678"} {
		_, err := ParseBalance(raw)
		assert.Error(t, err, raw)
	}
}
