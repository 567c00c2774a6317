package invoice

import (
	"github.com/shopspring/decimal"
)

// LineItem represents a single billable entry on an invoice. Price and
// Quantity are exact decimals and either may be negative. DisplayPrice and
// DisplayQuantity are presentation-only overrides; they never participate in
// arithmetic.
type LineItem struct {
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Description     string          `json:"description"`
	DisplayPrice    *string         `json:"display_price,omitempty"`
	DisplayQuantity *string         `json:"display_quantity,omitempty"`
}

// Amount returns price * quantity at full decimal precision. Rounding only
// happens at presentation and tax time, never here.
func (li *LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(li.Quantity)
}
