package pdf_test

import (
	"testing"
	"time"

	"github.com/invoiceforge/invoiceforge/internal/config"
	"github.com/invoiceforge/invoiceforge/internal/domain/invoice"
	ierr "github.com/invoiceforge/invoiceforge/internal/errors"
	"github.com/invoiceforge/invoiceforge/internal/i18n"
	"github.com/invoiceforge/invoiceforge/internal/pdf"
	"github.com/invoiceforge/invoiceforge/internal/testutil"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func decimalFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type RendererSuite struct {
	testutil.BaseTestSuite
}

func TestRenderer(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

// render runs the pipeline against a fresh recording canvas.
func (s *RendererSuite) render(inv *invoice.Invoice) *testutil.RecordingCanvas {
	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	r := pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()))
	_, err := r.RenderToBytes(inv)
	s.Require().NoError(err)
	return rec
}

// totalsTable returns the recorded table whose last row is the totals row.
func (s *RendererSuite) totalsTable(rec *testutil.RecordingCanvas) testutil.RecordedTable {
	for _, table := range rec.Tables {
		last := table.Rows[len(table.Rows)-1]
		if len(last) == 2 && last[0] == "Total" {
			return table
		}
	}
	s.Require().FailNow("no totals table recorded")
	return testutil.RecordedTable{}
}

func (s *RendererSuite) labels(table testutil.RecordedTable) []string {
	return lo.Map(table.Rows, func(row []string, _ int) string { return row[0] })
}

func (s *RendererSuite) TestTotalsTableWithoutRates() {
	rec := s.render(testutil.SampleInvoice())
	s.Equal([]string{"Total"}, s.labels(s.totalsTable(rec)))
}

func (s *RendererSuite) TestTotalsTableWithTax() {
	inv := testutil.SampleInvoice()
	inv.TaxRate = decimalFromString("0.1")

	table := s.totalsTable(s.render(inv))
	s.Equal([]string{"Subtotal", "Tax", "Total"}, s.labels(table))
	s.Equal("$1,130.00", table.Rows[0][1])
	s.Equal("$113.00", table.Rows[1][1])
	s.Equal("$1,243.00", table.Rows[2][1])
}

func (s *RendererSuite) TestTotalsTableWithShipping() {
	inv := testutil.SampleInvoice()
	inv.ShippingRate = decimalFromString("9.50")

	table := s.totalsTable(s.render(inv))
	s.Equal([]string{"Subtotal", "Shipping", "Total"}, s.labels(table))
}

func (s *RendererSuite) TestTotalsTableTaxRowWhenSubtotalNegative() {
	inv, err := invoice.New(invoice.Params{
		TaxRate: "0.1",
		LineItems: []invoice.LineItemParams{
			{Price: "-100", Quantity: "1", Description: "Credit"},
		},
	})
	s.Require().NoError(err)

	table := s.totalsTable(s.render(inv))
	s.Equal([]string{"Subtotal", "Tax", "Total"}, s.labels(table))
	s.Equal("$0.00", table.Rows[1][1], "tax row shows zero, not a computed amount")
}

func (s *RendererSuite) TestTotalsTableUsesRateDescriptions() {
	inv := testutil.SampleInvoice()
	inv.TaxRate = decimalFromString("0.2")
	inv.TaxDescription = "VAT (20%)"
	inv.ShippingRate = decimalFromString("4")
	inv.ShippingDescription = "Flat rate post"

	s.Equal(
		[]string{"Subtotal", "VAT (20%)", "Flat rate post", "Total"},
		s.labels(s.totalsTable(s.render(inv))),
	)
}

func (s *RendererSuite) TestTotalsRowIsLargerFont() {
	table := s.totalsTable(s.render(testutil.SampleInvoice()))
	s.Greater(table.Style.LastRowFontSize, pdf.DefaultFontSize)
}

func (s *RendererSuite) lineItemsTable(rec *testutil.RecordingCanvas) testutil.RecordedTable {
	for _, table := range rec.Tables {
		if len(table.Rows[0]) == 4 && table.Rows[0][0] == "Description" {
			return table
		}
	}
	s.Require().FailNow("no line items table recorded")
	return testutil.RecordedTable{}
}

func (s *RendererSuite) TestLineItemsTable() {
	rec := s.render(testutil.SampleInvoice())
	table := s.lineItemsTable(rec)

	s.Equal([]string{"Description", "Unit Price", "Quantity", "Amount"}, table.Rows[0])
	s.Equal([]string{"Pants", "$20.00", "5", "$100.00"}, table.Rows[1])
	s.Equal([]string{"Hats", "$5.00", "200", "$1,000.00"}, table.Rows[3])
	s.True(table.Style.HeaderBold)
	s.True(table.Style.Banding)
	s.Equal([]string{"L", "R", "R", "R"}, table.Style.Aligns)
}

func (s *RendererSuite) TestLineItemsDisplayOverrides() {
	inv := testutil.SampleInvoice()
	inv.LineItems[0].DisplayPrice = lo.ToPtr("on the house")
	inv.LineItems[0].DisplayQuantity = lo.ToPtr("a few")

	table := s.lineItemsTable(s.render(inv))
	s.Equal("on the house", table.Rows[1][1])
	s.Equal("a few", table.Rows[1][2])
	s.Equal("$100.00", table.Rows[1][3], "amount still computed from the numerics")
}

func (s *RendererSuite) TestDescriptionColumnAbsorbsRemainder() {
	for _, itemCount := range []int{1, 3, 25} {
		params := invoice.Params{TaxRate: "0.1"}
		for i := 0; i < itemCount; i++ {
			params.LineItems = append(params.LineItems, invoice.LineItemParams{
				Price: "12.34", Quantity: "2", Description: "Recurring line item entry",
			})
		}
		inv, err := invoice.New(params)
		s.Require().NoError(err)

		rec := s.render(inv)
		widths := s.lineItemsTable(rec).Style.ColumnWidths
		s.Require().Len(widths, 4)
		sum := widths[0] + widths[1] + widths[2] + widths[3]
		s.InDelta(rec.ContentWidth(), sum, 0.001)
	}
}

func (s *RendererSuite) TestStampPrecedence() {
	now := time.Now()
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name     string
		mutate   func(*invoice.Invoice)
		expected string
	}{
		{"refunded wins over paid", func(i *invoice.Invoice) {
			i.RefundedAt = &past
			i.PaidAt = &past
		}, "REFUNDED"},
		{"paid wins over overdue", func(i *invoice.Invoice) {
			i.PaidAt = &past
			i.DueAt = &past
		}, "PAID"},
		{"overdue", func(i *invoice.Invoice) {
			i.DueAt = &past
		}, "OVERDUE"},
	}
	for _, tc := range cases {
		inv := testutil.SampleInvoice()
		tc.mutate(inv)
		rec := s.render(inv)

		var stamped string
		for _, text := range rec.Texts {
			if text.Style.Rotation != 0 {
				stamped = text.Text
			}
		}
		s.Equal(tc.expected, stamped, tc.name)
	}
}

func (s *RendererSuite) TestNoStampWithoutStatus() {
	rec := s.render(testutil.SampleInvoice())
	for _, text := range rec.Texts {
		s.Zero(text.Style.Rotation)
	}
}

func (s *RendererSuite) TestShipToRenderedOnlyWhenPresent() {
	inv := testutil.SampleInvoice()
	rec := s.render(inv)
	s.True(rec.TextDrawn("Bill To"))
	s.False(rec.TextDrawn("Ship To"))

	inv.ShipTo = "Warehouse 9\nDock 4"
	rec = s.render(inv)
	s.True(rec.TextDrawn("Ship To"))
	s.True(rec.TextDrawn("Warehouse 9\nDock 4"))
}

func (s *RendererSuite) TestNotesRenderedOnlyWhenPresent() {
	rec := s.render(testutil.SampleInvoice())
	s.False(rec.TextDrawn("Notes"))
	s.NotContains(rec.Ops, "DrawRule()")

	inv := testutil.SampleInvoice()
	inv.Notes = "Payment due within 30 days."
	rec = s.render(inv)
	s.True(rec.TextDrawn("Notes"))
	s.Contains(rec.Ops, "DrawRule()")
	s.True(rec.TextDrawn("Payment due within 30 days."))
}

func (s *RendererSuite) TestDetailsTableRowOrder() {
	due := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	paid := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	inv, err := invoice.New(invoice.Params{
		InvoiceNumber: "INV-42",
		DueAt:         &due,
		PaidAt:        &paid,
		InvoiceDetails: []invoice.Detail{
			{Label: "PO Number", Value: "PO-777"},
			{Label: "Account", Value: "ACME"},
		},
		LineItems: []invoice.LineItemParams{
			{Price: "1", Quantity: "1", Description: "Thing"},
		},
	})
	s.Require().NoError(err)

	rec := s.render(inv)
	details := rec.Tables[0]
	s.Equal([][]string{
		{"Invoice #", "INV-42"},
		{"Due Date", "2024-03-01"},
		{"Paid Date", "2024-03-05"},
		{"PO Number", "PO-777"},
		{"Account", "ACME"},
	}, details.Rows)
	s.Equal([]int{1}, details.Style.BoldColumns)
	s.Equal([]string{"L", "R"}, details.Style.Aligns)
}

func (s *RendererSuite) TestDetailsTableOmitsUnsetNumberRow() {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := invoice.New(invoice.Params{
		DueAt: &due,
		LineItems: []invoice.LineItemParams{
			{Price: "1", Quantity: "1", Description: "Thing"},
		},
	})
	s.Require().NoError(err)

	rec := s.render(inv)
	s.Equal([][]string{{"Due Date", "2024-03-01"}}, rec.Tables[0].Rows)
}

func (s *RendererSuite) TestEmbeddedFamilyFirstFaceActivated() {
	family := pdf.EmbeddedFamily("Inter",
		pdf.FontFace{Style: "I", Path: "testdata/inter-italic.ttf"},
		pdf.FontFace{Style: "B", Path: "testdata/inter-bold.ttf"},
	)
	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	r := pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()), pdf.WithFont(family))
	_, err := r.RenderToBytes(testutil.SampleInvoice())
	s.Require().NoError(err)

	active := rec.Font()
	s.True(active.IsEmbedded())
	s.Equal("Inter", active.Name())
	s.Require().NotEmpty(active.Faces())
	s.Equal("I", active.Faces()[0].Style)
	s.True(active.HasStyle("B"))
	s.False(active.HasStyle(""), "only the declared faces exist")
}

func (s *RendererSuite) TestDateFormatOverride() {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := testutil.SampleInvoice()
	inv.DueAt = &due
	inv.DateFormat = "02 Jan 2006"

	rec := s.render(inv)
	s.Equal("01 Mar 2024", rec.Tables[0].Rows[1][1])
}

func (s *RendererSuite) TestPageNumbersOnlyOnMultiPageDocuments() {
	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	r := pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()))
	_, err := r.RenderToBytes(testutil.SampleInvoice())
	s.Require().NoError(err)
	s.False(rec.NumberedPages)

	rec = testutil.NewRecordingCanvas(types.PageSizeA4)
	rec.Pages = 3
	r = pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()))
	_, err = r.RenderToBytes(testutil.SampleInvoice())
	s.Require().NoError(err)
	s.True(rec.NumberedPages)
	s.Equal("%d / %d", rec.NumberFormat)
}

func (s *RendererSuite) TestPageSizeResolution() {
	rec := s.render(testutil.SampleInvoice())
	s.Equal(types.PageSizeA4, rec.PageSize, "process default")

	inv := testutil.SampleInvoice()
	inv.PageSize = types.PageSizeLetter
	rec = s.render(inv)
	s.Equal(types.PageSizeLetter, rec.PageSize, "invoice override")
}

func (s *RendererSuite) TestCompanyBannerFromDefaults() {
	cfg := config.GetDefaultConfig()
	cfg.Defaults.CompanyName = "ACME Corp"
	cfg.Defaults.CompanyDetails = []string{"1 Infinite Loop", "support@acme.test"}
	config.Set(cfg)

	rec := s.render(testutil.SampleInvoice())
	s.True(rec.TextDrawn("ACME Corp"))
	s.True(rec.TextDrawn("support@acme.test"))
}

func (s *RendererSuite) TestLogoOverrideAndFallback() {
	cfg := config.GetDefaultConfig()
	cfg.Defaults.InvoiceLogo = "testdata/default-logo.png"
	config.Set(cfg)

	rec := s.render(testutil.SampleInvoice())
	s.Require().Len(rec.Images, 1)
	s.Equal("testdata/default-logo.png", rec.Images[0].Path)

	inv := testutil.SampleInvoice()
	inv.Logo = &invoice.Logo{Path: "testdata/custom.svg", Width: 40}
	rec = s.render(inv)
	s.Require().Len(rec.Images, 1)
	s.Equal("testdata/custom.svg", rec.Images[0].Path)
	s.Equal(40.0, rec.Images[0].Width)
}

func (s *RendererSuite) TestTranslatorOverride() {
	inv := testutil.SampleInvoice()
	inv.Translator = i18n.TranslatorFunc(func(key string) string {
		if key == i18n.KeyInvoiceNumber {
			return "Facture no"
		}
		return ""
	})

	rec := s.render(inv)
	s.Equal("Facture no", rec.Tables[0].Rows[0][0], "override consulted first")
	s.True(rec.TextDrawn("Bill To"), "missing override keys fall back to the global table")
}

func (s *RendererSuite) TestRenderAbortsOnLogoFailure() {
	inv := testutil.SampleInvoice()
	inv.Logo = &invoice.Logo{Path: "missing.png"}

	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	rec.ImageErr = ierr.NewError("no such file").Mark(ierr.ErrIO)
	r := pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()))

	_, err := r.RenderToBytes(inv)
	s.Require().Error(err)
	s.True(ierr.IsIO(err))
	s.Empty(rec.Tables, "pipeline aborted before the table stages")
}

func (s *RendererSuite) TestRenderAbortsOnFontFailure() {
	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	rec.FontErr = ierr.NewError("unreadable font file").Mark(ierr.ErrIO)
	r := pdf.NewRenderer(pdf.WithCanvasFactory(rec.Factory()))

	_, err := r.RenderToBytes(testutil.SampleInvoice())
	s.Require().Error(err)
	s.True(ierr.IsIO(err))
}

func (s *RendererSuite) TestDeterministicOperationStream() {
	inv := testutil.SampleInvoice()
	inv.TaxRate = decimalFromString("0.1")
	inv.Notes = "Thanks!"

	first := s.render(inv)
	second := s.render(inv)

	a, err := first.Bytes()
	s.Require().NoError(err)
	b, err := second.Bytes()
	s.Require().NoError(err)
	s.Equal(a, b)
}

func (s *RendererSuite) TestCustomStageList() {
	ran := false
	rec := testutil.NewRecordingCanvas(types.PageSizeA4)
	r := pdf.NewRenderer(
		pdf.WithCanvasFactory(rec.Factory()),
		pdf.WithStages([]pdf.Stage{
			{Name: "only", Run: func(*pdf.RenderContext) error {
				ran = true
				return nil
			}},
		}),
	)
	_, err := r.RenderToBytes(testutil.SampleInvoice())
	s.Require().NoError(err)
	s.True(ran)
	s.Empty(rec.Tables, "default stages bypassed entirely")
}
