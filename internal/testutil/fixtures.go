package testutil

import (
	"github.com/invoiceforge/invoiceforge/internal/domain/invoice"
)

// SampleInvoice returns an invoice with the canonical three-item fixture:
// subtotal 1130, and with a 10% tax rate a total of 1243.00.
func SampleInvoice() *invoice.Invoice {
	inv, err := invoice.New(invoice.Params{
		InvoiceNumber: "INV-0001",
		BillTo:        "Jordan Cooper\n123 Main St\nSpringfield",
		Currency:      "USD",
		LineItems: []invoice.LineItemParams{
			{Price: "20", Quantity: "5", Description: "Pants"},
			{Price: "10", Quantity: "3", Description: "Shirts"},
			{Price: "5", Quantity: "200", Description: "Hats"},
		},
	})
	if err != nil {
		panic(err)
	}
	return inv
}
