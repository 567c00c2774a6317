package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ierr "github.com/invoiceforge/invoiceforge/internal/errors"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/samber/lo"
)

const (
	pageMargin      = 15.0
	pageBreakMargin = 20.0
	cellPadding     = 2.0
	// line height and cell height as multiples of the font size in points,
	// converted to page units
	lineHeightFactor = 0.5
	cellHeightFactor = 0.6
)

// fpdfCanvas implements Canvas on top of gofpdf.
type fpdfCanvas struct {
	doc      *gofpdf.Fpdf
	font     Font
	fontSize float64
}

// NewFpdfCanvas creates a single-use canvas for one render. The creation date
// is pinned so two renders of the same model produce byte-identical output.
func NewFpdfCanvas(size types.PageSize) (Canvas, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	doc := gofpdf.New("P", "mm", size.String(), "")
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageBreakMargin)
	doc.SetFont("Helvetica", "", DefaultFontSize)
	doc.AddPage()

	c := &fpdfCanvas{doc: doc, font: DefaultFont(), fontSize: DefaultFontSize}
	return c, c.wrap("init canvas", ierr.ErrSystem)
}

func (c *fpdfCanvas) wrap(op string, mark error) error {
	if c.doc.Err() {
		return ierr.WithError(c.doc.Error()).
			WithHintf("%s failed", op).
			Mark(mark)
	}
	return nil
}

// style resolves the fpdf style string for a bold request against the faces
// the active font actually has.
func (c *fpdfCanvas) style(bold bool) string {
	if bold && c.font.HasStyle("B") {
		return "B"
	}
	if !c.font.IsEmbedded() || c.font.HasStyle("") {
		return ""
	}
	return c.font.Faces()[0].Style
}

func (c *fpdfCanvas) setStyle(bold bool, size float64) {
	c.doc.SetFont(c.font.Name(), c.style(bold), size)
}

func (c *fpdfCanvas) SetFont(font Font) error {
	if font.IsEmbedded() {
		for _, face := range font.Faces() {
			c.doc.AddUTF8Font(font.Name(), face.Style, face.Path)
		}
		if c.doc.Err() {
			return c.wrap("load font family "+font.Name(), ierr.ErrIO)
		}
		c.font = font
		c.doc.SetFont(font.Name(), font.Faces()[0].Style, c.fontSize)
	} else {
		c.font = font
		c.doc.SetFont(font.Name(), "", c.fontSize)
	}
	return c.wrap("set font", ierr.ErrSystem)
}

func (c *fpdfCanvas) SetFontSize(size float64) {
	c.fontSize = size
	c.doc.SetFontSize(size)
}

func (c *fpdfCanvas) MeasureColumnWidths(rows [][]string, style TableStyle) []float64 {
	if len(rows) == 0 {
		return nil
	}
	size := style.FontSize
	if size == 0 {
		size = c.fontSize
	}
	widths := make([]float64, len(rows[0]))
	for ri, row := range rows {
		rowSize := size
		if ri == len(rows)-1 && style.LastRowFontSize > 0 {
			rowSize = style.LastRowFontSize
		}
		for ci, cell := range row {
			if ci >= len(widths) {
				break
			}
			bold := (style.HeaderBold && ri == 0) || lo.Contains(style.BoldColumns, ci)
			c.setStyle(bold, rowSize)
			if w := c.doc.GetStringWidth(cell) + 2*cellPadding; w > widths[ci] {
				widths[ci] = w
			}
		}
	}
	c.setStyle(false, c.fontSize)
	return widths
}

func (c *fpdfCanvas) DrawTable(rows [][]string, style TableStyle) (Extent, error) {
	if len(rows) == 0 {
		return Extent{}, nil
	}
	widths := style.ColumnWidths
	if len(widths) == 0 {
		widths = c.MeasureColumnWidths(rows, style)
	}
	size := style.FontSize
	if size == 0 {
		size = c.fontSize
	}

	x := c.LeftMargin()
	if style.OriginX != nil {
		x = *style.OriginX
	}
	startY := c.doc.GetY()

	headerRows := 0
	if style.HeaderBold {
		headerRows = 1
	}
	for ri, row := range rows {
		rowSize := size
		if ri == len(rows)-1 && style.LastRowFontSize > 0 {
			rowSize = style.LastRowFontSize
		}
		rowH := style.CellHeight
		if rowH == 0 {
			rowH = rowSize * cellHeightFactor
		}

		header := style.HeaderBold && ri == 0
		fill := false
		if header {
			c.doc.SetFillColor(220, 220, 220)
			fill = true
		} else if style.Banding && (ri-headerRows)%2 == 1 {
			c.doc.SetFillColor(245, 245, 245)
			fill = true
		}

		c.doc.SetXY(x, c.doc.GetY())
		for ci, cell := range row {
			if ci >= len(widths) {
				break
			}
			bold := header || lo.Contains(style.BoldColumns, ci)
			c.setStyle(bold, rowSize)
			align := "L"
			if ci < len(style.Aligns) && style.Aligns[ci] != "" {
				align = style.Aligns[ci]
			}
			c.doc.CellFormat(widths[ci], rowH, cell, "", 0, align, fill, 0, "")
		}
		c.doc.Ln(rowH)
	}
	c.setStyle(false, c.fontSize)

	total := 0.0
	for _, w := range widths {
		total += w
	}
	return Extent{Width: total, Height: c.doc.GetY() - startY}, c.wrap("draw table", ierr.ErrSystem)
}

func (c *fpdfCanvas) DrawBoundingBox(box Box, fn func() error) (float64, error) {
	lm, _, rm, _ := c.doc.GetMargins()
	prevX, prevY := c.doc.GetXY()
	pageW, _ := c.doc.GetPageSize()

	c.doc.SetLeftMargin(box.X)
	if box.W > 0 {
		c.doc.SetRightMargin(pageW - box.X - box.W)
	}
	c.doc.SetXY(box.X, box.Y)

	err := fn()
	endY := c.doc.GetY()

	c.doc.SetLeftMargin(lm)
	c.doc.SetRightMargin(rm)
	c.doc.SetXY(prevX, prevY)

	if err != nil {
		return endY, err
	}
	return endY, c.wrap("bounding box", ierr.ErrSystem)
}

func (c *fpdfCanvas) CursorY() float64 {
	return c.doc.GetY()
}

func (c *fpdfCanvas) MoveCursorTo(y float64) {
	c.doc.SetY(y)
}

func (c *fpdfCanvas) DrawImage(img ImageSpec) (float64, error) {
	if _, err := os.Stat(img.Path); err != nil {
		return 0, ierr.WithError(err).
			WithHintf("image file %s is not readable", img.Path).
			Mark(ierr.ErrIO)
	}

	if strings.EqualFold(filepath.Ext(img.Path), ".svg") {
		return c.drawSVG(img)
	}

	opts := gofpdf.ImageOptions{ReadDpi: true}
	info := c.doc.RegisterImageOptions(img.Path, opts)
	if c.doc.Err() {
		return 0, c.wrap("register image "+img.Path, ierr.ErrIO)
	}

	w, h := img.Width, img.Height
	if w == 0 && h == 0 {
		w, h = info.Width(), info.Height()
	}
	c.doc.ImageOptions(img.Path, img.X, img.Y, w, h, false, opts, 0, "")

	rendered := h
	if rendered == 0 && info.Width() > 0 {
		rendered = info.Height() * w / info.Width()
	}
	return rendered, c.wrap("draw image "+img.Path, ierr.ErrIO)
}

func (c *fpdfCanvas) drawSVG(img ImageSpec) (float64, error) {
	sig, err := gofpdf.SVGBasicFileParse(img.Path)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("svg file %s could not be parsed", img.Path).
			Mark(ierr.ErrIO)
	}
	scale := 1.0
	if img.Width > 0 && sig.Wd > 0 {
		scale = img.Width / sig.Wd
	} else if img.Height > 0 && sig.Ht > 0 {
		scale = img.Height / sig.Ht
	}
	c.doc.SetXY(img.X, img.Y)
	c.doc.SVGBasicWrite(&sig, scale)
	return sig.Ht * scale, c.wrap("draw svg "+img.Path, ierr.ErrIO)
}

func (c *fpdfCanvas) DrawText(text string, style TextStyle) error {
	size := style.Size
	if size == 0 {
		size = c.fontSize
	}
	c.setStyle(style.Bold, size)
	if style.Color != nil {
		c.doc.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	}

	lineH := size * lineHeightFactor
	if style.Rotation != 0 {
		// positioned text: centered in the wrap width, rotated about its
		// center, no flow advance
		w := style.Width
		if w == 0 {
			w = c.ContentWidth()
		}
		tw := c.doc.GetStringWidth(text)
		x := c.doc.GetX() + (w-tw)/2
		y := c.doc.GetY() + lineH
		c.doc.TransformBegin()
		c.doc.TransformRotate(style.Rotation, x+tw/2, y)
		c.doc.Text(x, y, text)
		c.doc.TransformEnd()
	} else {
		align := style.Align
		if align == "" {
			align = "L"
		}
		c.doc.MultiCell(style.Width, lineH, text, "", align, false)
	}

	if style.Color != nil {
		c.doc.SetTextColor(0, 0, 0)
	}
	c.setStyle(false, c.fontSize)
	return c.wrap("draw text", ierr.ErrSystem)
}

func (c *fpdfCanvas) DrawRule() {
	lm, _, rm, _ := c.doc.GetMargins()
	pageW, _ := c.doc.GetPageSize()
	y := c.doc.GetY()
	c.doc.SetDrawColor(120, 120, 120)
	c.doc.Line(lm, y, pageW-rm, y)
	c.doc.SetDrawColor(0, 0, 0)
	c.doc.Ln(2)
}

func (c *fpdfCanvas) PageCount() int {
	return c.doc.PageCount()
}

func (c *fpdfCanvas) NumberPages(format string, fromRight, fromBottom float64) {
	total := c.doc.PageCount()
	pageW, pageH := c.doc.GetPageSize()
	c.setStyle(false, DefaultFontSize)
	for n := 1; n <= total; n++ {
		c.doc.SetPage(n)
		label := fmt.Sprintf(format, n, total)
		w := c.doc.GetStringWidth(label)
		c.doc.Text(pageW-fromRight-w, pageH-fromBottom, label)
	}
	c.doc.SetPage(total)
	c.setStyle(false, c.fontSize)
}

func (c *fpdfCanvas) ContentWidth() float64 {
	lm, _, rm, _ := c.doc.GetMargins()
	pageW, _ := c.doc.GetPageSize()
	return pageW - lm - rm
}

func (c *fpdfCanvas) LeftMargin() float64 {
	lm, _, _, _ := c.doc.GetMargins()
	return lm
}

func (c *fpdfCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("finalizing the document failed").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

// WriteFile finalizes in memory first so an unwritable path never leaves a
// partially written document behind.
func (c *fpdfCanvas) WriteFile(path string) error {
	b, err := c.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("output path %s is not writable", path).
			Mark(ierr.ErrIO)
	}
	return nil
}
