package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	d := decimal.RequireFromString

	cases := []struct {
		name     string
		previous string
		current  string
		amount   string
		want     bool
	}{
		{"debited exactly", "1000.00", "975.00", "25.00", true},
		{"debited within tolerance", "1000.00", "975.005", "25.00", true},
		{"not debited", "1000.00", "1000.00", "25.00", false},
		{"debited twice", "1000.00", "950.00", "25.00", false},
		{"off by one cent", "1000.00", "975.01", "25.00", false},
		{"zero amount unchanged balance", "10.00", "10.00", "0", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(d(tc.previous), d(tc.current), d(tc.amount))
			assert.Equal(t, tc.want, got)
		})
	}
}
