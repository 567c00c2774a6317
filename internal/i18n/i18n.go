package i18n

import "sync"

// Translator resolves a key to display text. An empty result means the
// translator has no answer and the caller should fall through.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) Translate(key string) string {
	return f(key)
}

// Keys used by the invoice layout engine.
const (
	KeyDescription   = "invoice.description"
	KeyUnitPrice     = "invoice.unit_price"
	KeyQuantity      = "invoice.quantity"
	KeyAmount        = "invoice.amount"
	KeySubtotal      = "invoice.subtotal"
	KeyTax           = "invoice.tax"
	KeyShipping      = "invoice.shipping"
	KeyTotal         = "invoice.total"
	KeyNotes         = "invoice.notes"
	KeyBillTo        = "invoice.bill_to"
	KeyShipTo        = "invoice.ship_to"
	KeyInvoiceNumber = "invoice.number"
	KeyDueDate       = "invoice.due_date"
	KeyPaidDate      = "invoice.paid_date"
	KeyRefundedDate  = "invoice.refunded_date"
	KeyStampPaid     = "invoice.stamp.paid"
	KeyStampRefunded = "invoice.stamp.refunded"
	KeyStampOverdue  = "invoice.stamp.overdue"
)

var defaultTable = map[string]string{
	KeyDescription:   "Description",
	KeyUnitPrice:     "Unit Price",
	KeyQuantity:      "Quantity",
	KeyAmount:        "Amount",
	KeySubtotal:      "Subtotal",
	KeyTax:           "Tax",
	KeyShipping:      "Shipping",
	KeyTotal:         "Total",
	KeyNotes:         "Notes",
	KeyBillTo:        "Bill To",
	KeyShipTo:        "Ship To",
	KeyInvoiceNumber: "Invoice #",
	KeyDueDate:       "Due Date",
	KeyPaidDate:      "Paid Date",
	KeyRefundedDate:  "Refunded Date",
	KeyStampPaid:     "PAID",
	KeyStampRefunded: "REFUNDED",
	KeyStampOverdue:  "OVERDUE",
}

var (
	mu    sync.RWMutex
	table map[string]string
)

func init() {
	Reset()
}

// Translate resolves a key against the global translation table. Unknown keys
// return the key itself so a missing entry is visible rather than blank.
func Translate(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// Lookup checks the per-invoice override first, then the global table.
func Lookup(override Translator, key string) string {
	if override != nil {
		if v := override.Translate(key); v != "" {
			return v
		}
	}
	return Translate(key)
}

// Set installs or replaces a single global translation.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	table[key] = value
}

// Reset restores the built-in English table. Tests must call this between
// cases that call Set.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	table = make(map[string]string, len(defaultTable))
	for k, v := range defaultTable {
		table[k] = v
	}
}
