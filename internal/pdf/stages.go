package pdf

import (
	"math"

	"github.com/invoiceforge/invoiceforge/internal/i18n"

	"github.com/samber/lo"
)

const (
	sectionGap         = 8.0
	addressColumnWidth = 80.0
	addressColumnGap   = 10.0
	stampTop           = 30.0
	stampHeight        = 40.0
	stampFontSize      = 30.0
	stampRotation      = 15.0
	pageNumberRight    = 25.0
	pageNumberBottom   = 10.0
)

// stageSetup activates the configured font and size.
func stageSetup(ctx *RenderContext) error {
	if err := ctx.canvas.SetFont(ctx.font); err != nil {
		return err
	}
	ctx.canvas.SetFontSize(ctx.fontSize)
	return nil
}

// stageStamp overlays the invoice status over the top region. Precedence:
// refunded, then paid, then overdue. Placed via bounding box in absolute
// coordinates so it does not consume vertical flow.
func stageStamp(ctx *RenderContext) error {
	var key string
	switch {
	case ctx.inv.Refunded():
		key = i18n.KeyStampRefunded
	case ctx.inv.Paid():
		key = i18n.KeyStampPaid
	case ctx.inv.Overdue():
		key = i18n.KeyStampOverdue
	default:
		return nil
	}

	box := Box{
		X: ctx.canvas.LeftMargin(),
		Y: stampTop,
		W: ctx.canvas.ContentWidth(),
		H: stampHeight,
	}
	_, err := ctx.canvas.DrawBoundingBox(box, func() error {
		return ctx.canvas.DrawText(ctx.t(key), TextStyle{
			Bold:     true,
			Size:     stampFontSize,
			Align:    "C",
			Rotation: stampRotation,
			Color:    &Color{R: 205, G: 80, B: 80},
		})
	})
	return err
}

// stageBanner draws the logo at the top-left and the company block at the
// top-right, then advances below the taller of the two.
func stageBanner(ctx *RenderContext) error {
	top := ctx.canvas.CursorY()

	logoBottom := top
	if logo := ctx.logo(); logo != nil {
		h, err := ctx.canvas.DrawImage(ImageSpec{
			Path:   logo.Path,
			X:      ctx.canvas.LeftMargin(),
			Y:      top,
			Width:  logo.Width,
			Height: logo.Height,
		})
		if err != nil {
			return err
		}
		logoBottom = top + h
	}

	companyBottom := top
	if ctx.defaults.CompanyName != "" || len(ctx.defaults.CompanyDetails) > 0 {
		half := ctx.canvas.ContentWidth() / 2
		box := Box{X: ctx.canvas.LeftMargin() + half, Y: top, W: half}
		end, err := ctx.canvas.DrawBoundingBox(box, func() error {
			if ctx.defaults.CompanyName != "" {
				err := ctx.canvas.DrawText(ctx.defaults.CompanyName, TextStyle{
					Bold:  true,
					Size:  ctx.fontSize + 4,
					Align: "R",
				})
				if err != nil {
					return err
				}
			}
			for _, line := range ctx.defaults.CompanyDetails {
				if err := ctx.canvas.DrawText(line, TextStyle{Align: "R"}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		companyBottom = end
	}

	ctx.canvas.MoveCursorTo(math.Max(logoBottom, companyBottom) + sectionGap)
	return nil
}

// stageAddresses renders the bill-to column and, when provided, the ship-to
// column beside it, then advances below the taller block.
func stageAddresses(ctx *RenderContext) error {
	top := ctx.canvas.CursorY()

	leftBox := Box{X: ctx.canvas.LeftMargin(), Y: top, W: addressColumnWidth}
	leftEnd, err := ctx.canvas.DrawBoundingBox(leftBox, func() error {
		return drawAddressBlock(ctx, i18n.KeyBillTo, ctx.inv.BillToText())
	})
	if err != nil {
		return err
	}

	rightEnd := top
	if ctx.inv.ShipToText() != "" {
		rightBox := Box{
			X: ctx.canvas.LeftMargin() + addressColumnWidth + addressColumnGap,
			Y: top,
			W: addressColumnWidth,
		}
		rightEnd, err = ctx.canvas.DrawBoundingBox(rightBox, func() error {
			return drawAddressBlock(ctx, i18n.KeyShipTo, ctx.inv.ShipToText())
		})
		if err != nil {
			return err
		}
	}

	ctx.canvas.MoveCursorTo(math.Max(leftEnd, rightEnd) + sectionGap)
	return nil
}

func drawAddressBlock(ctx *RenderContext, headingKey, text string) error {
	if err := ctx.canvas.DrawText(ctx.t(headingKey), TextStyle{Bold: true}); err != nil {
		return err
	}
	return ctx.canvas.DrawText(text, TextStyle{})
}

// stageDetails renders the invoice details table: conditional rows in fixed
// order, then caller extras verbatim. Values are bold and right-aligned.
func stageDetails(ctx *RenderContext) error {
	var rows [][]string
	add := func(label, value string) {
		rows = append(rows, []string{label, value})
	}

	if ctx.inv.Number() != "" {
		add(ctx.t(i18n.KeyInvoiceNumber), ctx.inv.Number())
	}
	if due := ctx.inv.DueDate(); due != nil {
		add(ctx.t(i18n.KeyDueDate), ctx.fmtDate(*due))
	}
	if paid := ctx.inv.PaidDate(); paid != nil {
		add(ctx.t(i18n.KeyPaidDate), ctx.fmtDate(*paid))
	}
	if refunded := ctx.inv.RefundedDate(); refunded != nil {
		add(ctx.t(i18n.KeyRefundedDate), ctx.fmtDate(*refunded))
	}
	for _, d := range ctx.inv.DetailPairs() {
		add(d.Label, d.Value)
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := ctx.canvas.DrawTable(rows, TableStyle{
		Aligns:      []string{"L", "R"},
		BoldColumns: []int{1},
	})
	if err != nil {
		return err
	}
	ctx.canvas.MoveCursorTo(ctx.canvas.CursorY() + sectionGap)
	return nil
}

// stageLineItems renders the line items table. The three numeric columns keep
// their natural widths; the description column absorbs the remainder so the
// table always spans the full content width.
func stageLineItems(ctx *RenderContext) error {
	rows := [][]string{{
		ctx.t(i18n.KeyDescription),
		ctx.t(i18n.KeyUnitPrice),
		ctx.t(i18n.KeyQuantity),
		ctx.t(i18n.KeyAmount),
	}}
	for _, item := range ctx.inv.Items() {
		rows = append(rows, []string{
			item.Description,
			lo.FromPtrOr(item.DisplayPrice, ctx.fmtMoney(item.Price)),
			lo.FromPtrOr(item.DisplayQuantity, item.Quantity.String()),
			ctx.fmtMoney(item.Amount()),
		})
	}

	style := TableStyle{
		HeaderBold: true,
		Banding:    true,
		Aligns:     []string{"L", "R", "R", "R"},
	}
	natural := ctx.canvas.MeasureColumnWidths(rows, style)
	widths := make([]float64, len(natural))
	copy(widths, natural)
	widths[0] = ctx.canvas.ContentWidth() - natural[1] - natural[2] - natural[3]
	style.ColumnWidths = widths

	if _, err := ctx.canvas.DrawTable(rows, style); err != nil {
		return err
	}
	ctx.canvas.MoveCursorTo(ctx.canvas.CursorY() + sectionGap)
	return nil
}

// stageTotals renders the right-aligned totals block. Subtotal appears only
// when a tax or shipping rate is set, tax and shipping only when their rate
// is positive, and the total row is always last, in a larger font.
func stageTotals(ctx *RenderContext) error {
	taxed := ctx.inv.TaxRateFraction().IsPositive()
	shipped := ctx.inv.Shipping().IsPositive()

	var rows [][]string
	if taxed || shipped {
		rows = append(rows, []string{ctx.t(i18n.KeySubtotal), ctx.fmtMoney(ctx.inv.Subtotal())})
	}
	if taxed {
		label := ctx.inv.TaxLabel()
		if label == "" {
			label = ctx.t(i18n.KeyTax)
		}
		rows = append(rows, []string{label, ctx.fmtMoney(ctx.inv.Tax())})
	}
	if shipped {
		label := ctx.inv.ShippingLabel()
		if label == "" {
			label = ctx.t(i18n.KeyShipping)
		}
		rows = append(rows, []string{label, ctx.fmtMoney(ctx.inv.Shipping())})
	}
	rows = append(rows, []string{ctx.t(i18n.KeyTotal), ctx.fmtMoney(ctx.inv.Total())})

	style := TableStyle{
		Aligns:          []string{"L", "R"},
		LastRowFontSize: ctx.fontSize + 3,
	}
	widths := ctx.canvas.MeasureColumnWidths(rows, style)
	blockWidth := widths[0] + widths[1]
	originX := ctx.canvas.LeftMargin() + ctx.canvas.ContentWidth() - blockWidth
	style.ColumnWidths = widths
	style.OriginX = &originX

	if _, err := ctx.canvas.DrawTable(rows, style); err != nil {
		return err
	}
	ctx.canvas.MoveCursorTo(ctx.canvas.CursorY() + sectionGap)
	return nil
}

// stageNotes renders the notes section when notes text is present.
func stageNotes(ctx *RenderContext) error {
	notes := ctx.inv.NotesText()
	if notes == "" {
		return nil
	}
	err := ctx.canvas.DrawText(ctx.t(i18n.KeyNotes), TextStyle{
		Bold: true,
		Size: ctx.fontSize + 1,
	})
	if err != nil {
		return err
	}
	ctx.canvas.DrawRule()
	return ctx.canvas.DrawText(notes, TextStyle{})
}

// stagePageNumbers numbers every page at a fixed bottom-right offset, only
// when the finished document has more than one page.
func stagePageNumbers(ctx *RenderContext) error {
	if ctx.canvas.PageCount() > 1 {
		ctx.canvas.NumberPages("%d / %d", pageNumberRight, pageNumberBottom)
	}
	return nil
}
