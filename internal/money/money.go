package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders an exact decimal amount as display text for the given
// ISO 4217 currency code, applying the currency's subunit scaling and its
// symbol/separator rules. Unknown codes fall back to a plain two-decimal
// rendering with the code appended.
func Format(amount decimal.Decimal, code string) string {
	currency := gomoney.GetCurrency(strings.ToUpper(code))
	if currency == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, currency.Code).Display()
}
