package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSessionAmount(t *testing.T) {
	cases := []struct {
		rate    string
		minutes int
		want    string
	}{
		{"1500", 30, "750.00"},
		{"1500", 60, "1500.00"},
		{"1500", 90, "2250.00"},
		{"1500", 120, "3000.00"},
		{"1234.57", 30, "617.29"},
		{"1234.57", 90, "1851.86"},
		{"999.99", 30, "500.00"},
		{"10.01", 90, "15.02"},
		{"33.33", 120, "66.66"},
	}

	for _, tc := range cases {
		got := SessionAmount(decimal.RequireFromString(tc.rate), tc.minutes)
		assert.Equal(t, tc.want, got.StringFixed(2), "rate %s, %d min", tc.rate, tc.minutes)
	}
}

func TestSessionAmountHasTwoDecimalsAtMost(t *testing.T) {
	rate := decimal.RequireFromString("77.77")
	for _, d := range SupportedDurations {
		got := SessionAmount(rate, d)
		assert.True(t, got.Equal(got.Round(2)), "duration %d gives %s", d, got)
	}
}

func TestIsSupportedDuration(t *testing.T) {
	for _, d := range []int{30, 60, 90, 120} {
		assert.True(t, IsSupportedDuration(d), d)
	}
	for _, d := range []int{0, 15, 45, 150, -30} {
		assert.False(t, IsSupportedDuration(d), d)
	}
}
