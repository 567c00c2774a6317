package invoice

import (
	"time"

	ierr "github.com/invoiceforge/invoiceforge/internal/errors"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/shopspring/decimal"
)

// Params is the construction bundle for an invoice. All fields are optional;
// unset fields default to absent/empty/zero. Numeric fields are text so that
// malformed input fails at construction with a validation error instead of
// being silently coerced to zero.
type Params struct {
	InvoiceNumber       string           `json:"invoice_number,omitempty"`
	BillTo              string           `json:"bill_to,omitempty"`
	ShipTo              string           `json:"ship_to,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	Currency            string           `json:"currency,omitempty"`
	LineItems           []LineItemParams `json:"line_items,omitempty"`
	ShippingRate        string           `json:"shipping_rate,omitempty"`
	ShippingDescription string           `json:"shipping_description,omitempty"`
	TaxRate             string           `json:"tax_rate,omitempty"`
	TaxDescription      string           `json:"tax_description,omitempty"`
	DueAt               *time.Time       `json:"due_at,omitempty"`
	PaidAt              *time.Time       `json:"paid_at,omitempty"`
	RefundedAt          *time.Time       `json:"refunded_at,omitempty"`
	InvoiceDetails      []Detail         `json:"invoice_details,omitempty"`

	PageSize   string `json:"page_size,omitempty"`
	Logo       *Logo  `json:"logo,omitempty"`
	DateFormat string `json:"date_format,omitempty"`
}

// LineItemParams is the construction bundle for a single line item.
type LineItemParams struct {
	Price           string  `json:"price"`
	Quantity        string  `json:"quantity"`
	Description     string  `json:"description"`
	DisplayPrice    *string `json:"display_price,omitempty"`
	DisplayQuantity *string `json:"display_quantity,omitempty"`
}

// New builds an Invoice from a params bundle. Rates and line item numerics
// are coerced to exact decimals. An unset invoice number stays empty, which
// omits the number row from the rendered details table; callers that want a
// generated number opt in through GenerateInvoiceNumber.
func New(params Params) (*Invoice, error) {
	taxRate, err := parseDecimal("tax_rate", params.TaxRate)
	if err != nil {
		return nil, err
	}
	shippingRate, err := parseDecimal("shipping_rate", params.ShippingRate)
	if err != nil {
		return nil, err
	}
	if params.PageSize != "" {
		if err := types.PageSize(params.PageSize).Validate(); err != nil {
			return nil, err
		}
	}

	lineItems := make([]*LineItem, 0, len(params.LineItems))
	for _, itemParams := range params.LineItems {
		item, err := NewLineItem(itemParams)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, item)
	}

	return &Invoice{
		InvoiceNumber:       params.InvoiceNumber,
		BillTo:              params.BillTo,
		ShipTo:              params.ShipTo,
		Notes:               params.Notes,
		Currency:            params.Currency,
		Details:             params.InvoiceDetails,
		LineItems:           lineItems,
		ShippingRate:        shippingRate,
		ShippingDescription: params.ShippingDescription,
		TaxRate:             taxRate,
		TaxDescription:      params.TaxDescription,
		DueAt:               params.DueAt,
		PaidAt:              params.PaidAt,
		RefundedAt:          params.RefundedAt,
		PageSize:            types.PageSize(params.PageSize),
		Logo:                params.Logo,
		DateFormat:          params.DateFormat,
	}, nil
}

// NewLineItem builds a line item from a params bundle, coercing price and
// quantity to exact decimals.
func NewLineItem(params LineItemParams) (*LineItem, error) {
	price, err := parseDecimal("price", params.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := parseDecimal("quantity", params.Quantity)
	if err != nil {
		return nil, err
	}
	return &LineItem{
		Price:           price,
		Quantity:        quantity,
		Description:     params.Description,
		DisplayPrice:    params.DisplayPrice,
		DisplayQuantity: params.DisplayQuantity,
	}, nil
}

// GenerateInvoiceNumber returns a short human-facing invoice number such as
// INV-XYZ12A8Q. Construction never assigns one implicitly.
func GenerateInvoiceNumber() string {
	return types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE)
}

// MustLineItem is a test/fixture helper for literal line items.
func MustLineItem(price, quantity, description string) *LineItem {
	item, err := NewLineItem(LineItemParams{
		Price:       price,
		Quantity:    quantity,
		Description: description,
	})
	if err != nil {
		panic(err)
	}
	return item
}

// parseDecimal coerces text to an exact decimal. Empty text means the field
// was not supplied and yields exact zero.
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("%s must be a valid decimal number", field).
			WithReportableDetails(map[string]any{
				"field": field,
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}
	return d, nil
}
