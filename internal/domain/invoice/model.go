package invoice

import (
	"time"

	"github.com/invoiceforge/invoiceforge/internal/i18n"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/shopspring/decimal"
)

// Detail is one caller-supplied label/value pair rendered in the invoice
// details table. Insertion order is significant.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Logo points at a raster or vector image file. Width and Height are optional
// explicit dimensions in page units; zero means natural size.
type Logo struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Invoice is the financial model. Totals are never stored; they are computed
// on demand from the line items and rates. The model is read-only during a
// render and callers must not mutate it while a render is in flight.
type Invoice struct {
	InvoiceNumber       string
	BillTo              string
	ShipTo              string
	Notes               string
	Currency            string
	Details             []Detail
	LineItems           []*LineItem
	ShippingRate        decimal.Decimal
	ShippingDescription string
	TaxRate             decimal.Decimal
	TaxDescription      string
	DueAt               *time.Time
	PaidAt              *time.Time
	RefundedAt          *time.Time

	// Per-invoice rendering overrides; zero values fall through to the
	// process-wide defaults provider.
	PageSize   types.PageSize
	Logo       *Logo
	DateFormat string
	Translator i18n.Translator

	renderer Renderer
}

// AddLineItem appends a line item to the invoice's ordered collection.
func (i *Invoice) AddLineItem(item *LineItem) {
	i.LineItems = append(i.LineItems, item)
}

// Subtotal returns the exact, unrounded sum of all line amounts. An empty
// collection yields exact zero.
func (i *Invoice) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range i.LineItems {
		subtotal = subtotal.Add(item.Amount())
	}
	return subtotal
}

// Tax returns subtotal * taxRate rounded half-up to two decimal places.
// A zero or negative subtotal never generates tax regardless of the rate.
func (i *Invoice) Tax() decimal.Decimal {
	subtotal := i.Subtotal()
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Mul(i.TaxRate).Round(2)
}

// Shipping returns the flat shipping rate verbatim. It is independent of the
// line items and, unlike tax, is not clamped for negative values.
func (i *Invoice) Shipping() decimal.Decimal {
	return i.ShippingRate
}

// Total returns subtotal + tax + shipping with no rounding beyond what Tax
// already applied.
func (i *Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.Tax()).Add(i.Shipping())
}

// Paid reports whether a paid timestamp is present, regardless of its value.
func (i *Invoice) Paid() bool {
	return i.PaidAt != nil
}

// Refunded reports whether a refunded timestamp is present.
func (i *Invoice) Refunded() bool {
	return i.RefundedAt != nil
}

// Overdue reports whether the due date has passed without payment.
func (i *Invoice) Overdue() bool {
	return i.OverdueAt(time.Now())
}

// OverdueAt is Overdue evaluated against an explicit clock reading.
func (i *Invoice) OverdueAt(now time.Time) bool {
	return i.DueAt != nil && i.DueAt.Before(now) && !i.Paid()
}

// Invoiceable accessors

func (i *Invoice) Number() string                      { return i.InvoiceNumber }
func (i *Invoice) BillToText() string                  { return i.BillTo }
func (i *Invoice) ShipToText() string                  { return i.ShipTo }
func (i *Invoice) NotesText() string                   { return i.Notes }
func (i *Invoice) CurrencyCode() string                { return i.Currency }
func (i *Invoice) DetailPairs() []Detail               { return i.Details }
func (i *Invoice) Items() []*LineItem                  { return i.LineItems }
func (i *Invoice) TaxRateFraction() decimal.Decimal    { return i.TaxRate }
func (i *Invoice) TaxLabel() string                    { return i.TaxDescription }
func (i *Invoice) ShippingLabel() string               { return i.ShippingDescription }
func (i *Invoice) DueDate() *time.Time                 { return i.DueAt }
func (i *Invoice) PaidDate() *time.Time                { return i.PaidAt }
func (i *Invoice) RefundedDate() *time.Time            { return i.RefundedAt }
func (i *Invoice) Page() types.PageSize                { return i.PageSize }
func (i *Invoice) LogoSpec() *Logo                     { return i.Logo }
func (i *Invoice) DateLayout() string                  { return i.DateFormat }
func (i *Invoice) TranslatorOverride() i18n.Translator { return i.Translator }

// Renderer returns the renderer bound to this invoice, falling back to the
// registered default layout engine.
func (i *Invoice) Renderer() Renderer {
	if i.renderer != nil {
		return i.renderer
	}
	return DefaultRenderer()
}

// SetRenderer binds an alternate renderer strategy to this invoice.
func (i *Invoice) SetRenderer(r Renderer) {
	i.renderer = r
}

// Render runs the bound renderer and returns the finished document bytes.
func (i *Invoice) Render() ([]byte, error) {
	return i.Renderer().RenderToBytes(i)
}

// RenderToFile runs the bound renderer and writes the document to path.
func (i *Invoice) RenderToFile(path string) error {
	return i.Renderer().RenderToFile(i, path)
}
