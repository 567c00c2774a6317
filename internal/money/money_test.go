package money_test

import (
	"testing"

	"github.com/invoiceforge/invoiceforge/internal/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{"usd", "1130", "USD", "$1,130.00"},
		{"usd cents", "9.5", "USD", "$9.50"},
		{"usd negative", "-13.5", "USD", "-$13.50"},
		{"eur uses european separators", "1234.56", "EUR", "€1.234,56"},
		{"jpy has no minor units", "1500", "JPY", "¥1,500"},
		{"rounding to minor units", "10.005", "USD", "$10.01"},
		{"unknown code falls back", "12.5", "ZZZ", "12.50 ZZZ"},
		{"zero", "0", "USD", "$0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.expected, money.Format(amount, tc.currency))
		})
	}
}
