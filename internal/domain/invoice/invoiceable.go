package invoice

import (
	"sync"
	"time"

	ierr "github.com/invoiceforge/invoiceforge/internal/errors"
	"github.com/invoiceforge/invoiceforge/internal/i18n"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/shopspring/decimal"
)

// Invoiceable is the capability contract any renderable invoice-like entity
// must satisfy. It bridges the financial model to the layout engine: totals,
// status predicates, the ordered line items, the presentation overrides and a
// bindable renderer slot.
type Invoiceable interface {
	Number() string
	BillToText() string
	ShipToText() string
	NotesText() string
	CurrencyCode() string
	DetailPairs() []Detail
	Items() []*LineItem

	Subtotal() decimal.Decimal
	Tax() decimal.Decimal
	Shipping() decimal.Decimal
	Total() decimal.Decimal
	TaxRateFraction() decimal.Decimal
	TaxLabel() string
	ShippingLabel() string

	Paid() bool
	Refunded() bool
	Overdue() bool
	DueDate() *time.Time
	PaidDate() *time.Time
	RefundedDate() *time.Time

	Page() types.PageSize
	LogoSpec() *Logo
	DateLayout() string
	TranslatorOverride() i18n.Translator

	Renderer() Renderer
	SetRenderer(Renderer)
}

var _ Invoiceable = (*Invoice)(nil)

// Renderer turns an invoiceable entity into a finished document. The standard
// implementation is the PDF layout engine; alternate output formats plug in
// through this seam.
type Renderer interface {
	RenderToBytes(inv Invoiceable) ([]byte, error)
	RenderToFile(inv Invoiceable, path string) error
}

var (
	rendererMu      sync.RWMutex
	defaultRenderer Renderer
)

// RegisterDefaultRenderer installs the process-wide default renderer. The pdf
// package registers its layout engine here on import.
func RegisterDefaultRenderer(r Renderer) {
	rendererMu.Lock()
	defaultRenderer = r
	rendererMu.Unlock()
}

// DefaultRenderer returns the registered default renderer.
func DefaultRenderer() Renderer {
	rendererMu.RLock()
	defer rendererMu.RUnlock()
	if defaultRenderer == nil {
		return unboundRenderer{}
	}
	return defaultRenderer
}

// unboundRenderer fails loudly when nothing has registered a default.
type unboundRenderer struct{}

func (unboundRenderer) RenderToBytes(Invoiceable) ([]byte, error) {
	return nil, ierr.NewError("no renderer registered").
		WithHint("Import the pdf package or bind a renderer to the invoice").
		Mark(ierr.ErrInvalidOperation)
}

func (unboundRenderer) RenderToFile(Invoiceable, string) error {
	_, err := unboundRenderer{}.RenderToBytes(nil)
	return err
}
