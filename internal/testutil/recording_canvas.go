package testutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/invoiceforge/invoiceforge/internal/pdf"
	"github.com/invoiceforge/invoiceforge/internal/types"
)

// RecordedTable captures one DrawTable call.
type RecordedTable struct {
	Rows  [][]string
	Style pdf.TableStyle
}

// RecordedText captures one DrawText call.
type RecordedText struct {
	Text  string
	Style pdf.TextStyle
}

// RecordingCanvas is a deterministic in-memory Canvas for renderer tests. It
// records every operation in order and simulates text measurement with a
// fixed per-character width.
type RecordingCanvas struct {
	Ops    []string
	Tables []RecordedTable
	Texts  []RecordedText
	Images []pdf.ImageSpec

	// Pages simulates the finished page count. Default 1.
	Pages int
	// Error injection for failure-path tests.
	FontErr  error
	ImageErr error

	PageSize types.PageSize
	NumberedPages bool
	NumberFormat  string

	font     pdf.Font
	fontSize float64
	cursorY  float64
}

const (
	recCharWidth    = 2.0
	recCellPadding  = 2.0
	recLineHeight   = 5.0
	recContentWidth = 180.0
	recLeftMargin   = 15.0
)

// NewRecordingCanvas creates a recording canvas for one simulated render.
func NewRecordingCanvas(size types.PageSize) *RecordingCanvas {
	return &RecordingCanvas{
		Pages:    1,
		PageSize: size,
		font:     pdf.DefaultFont(),
		fontSize: pdf.DefaultFontSize,
		cursorY:  recLeftMargin,
	}
}

// Factory returns a CanvasFactory that hands out this canvas and remembers
// the page size it was asked for.
func (c *RecordingCanvas) Factory() pdf.CanvasFactory {
	return func(size types.PageSize) (pdf.Canvas, error) {
		c.PageSize = size
		return c, nil
	}
}

var _ pdf.Canvas = (*RecordingCanvas)(nil)

func (c *RecordingCanvas) record(format string, args ...any) {
	c.Ops = append(c.Ops, fmt.Sprintf(format, args...))
}

func (c *RecordingCanvas) SetFont(font pdf.Font) error {
	if c.FontErr != nil {
		return c.FontErr
	}
	c.font = font
	c.record("SetFont(%s)", font.Name())
	return nil
}

func (c *RecordingCanvas) SetFontSize(size float64) {
	c.fontSize = size
	c.record("SetFontSize(%g)", size)
}

func (c *RecordingCanvas) MeasureColumnWidths(rows [][]string, style pdf.TableStyle) []float64 {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]float64, len(rows[0]))
	for _, row := range rows {
		for ci, cell := range row {
			if ci >= len(widths) {
				break
			}
			if w := float64(len(cell))*recCharWidth + 2*recCellPadding; w > widths[ci] {
				widths[ci] = w
			}
		}
	}
	return widths
}

func (c *RecordingCanvas) DrawTable(rows [][]string, style pdf.TableStyle) (pdf.Extent, error) {
	widths := style.ColumnWidths
	if len(widths) == 0 {
		widths = c.MeasureColumnWidths(rows, style)
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	height := float64(len(rows)) * recLineHeight
	c.cursorY += height
	c.Tables = append(c.Tables, RecordedTable{Rows: rows, Style: style})
	c.record("DrawTable(rows=%d cols=%d width=%.1f)", len(rows), len(widths), total)
	return pdf.Extent{Width: total, Height: height}, nil
}

func (c *RecordingCanvas) DrawBoundingBox(box pdf.Box, fn func() error) (float64, error) {
	saved := c.cursorY
	c.cursorY = box.Y
	c.record("BoundingBox(x=%.1f y=%.1f w=%.1f)", box.X, box.Y, box.W)
	err := fn()
	endY := c.cursorY
	c.cursorY = saved
	return endY, err
}

func (c *RecordingCanvas) CursorY() float64 {
	return c.cursorY
}

func (c *RecordingCanvas) MoveCursorTo(y float64) {
	c.cursorY = y
	c.record("MoveCursorTo(%.1f)", y)
}

func (c *RecordingCanvas) DrawImage(img pdf.ImageSpec) (float64, error) {
	if c.ImageErr != nil {
		return 0, c.ImageErr
	}
	c.Images = append(c.Images, img)
	c.record("DrawImage(%s)", img.Path)
	height := img.Height
	if height == 0 {
		height = 20
	}
	return height, nil
}

func (c *RecordingCanvas) DrawText(text string, style pdf.TextStyle) error {
	c.Texts = append(c.Texts, RecordedText{Text: text, Style: style})
	c.record("DrawText(%q bold=%t rot=%g)", text, style.Bold, style.Rotation)
	if style.Rotation == 0 {
		c.cursorY += recLineHeight * float64(1+strings.Count(text, "\n"))
	}
	return nil
}

func (c *RecordingCanvas) DrawRule() {
	c.record("DrawRule()")
	c.cursorY += 2
}

func (c *RecordingCanvas) PageCount() int {
	return c.Pages
}

func (c *RecordingCanvas) NumberPages(format string, fromRight, fromBottom float64) {
	c.NumberedPages = true
	c.NumberFormat = format
	c.record("NumberPages(%q)", format)
}

func (c *RecordingCanvas) ContentWidth() float64 {
	return recContentWidth
}

func (c *RecordingCanvas) LeftMargin() float64 {
	return recLeftMargin
}

// Font returns the font most recently activated through SetFont.
func (c *RecordingCanvas) Font() pdf.Font {
	return c.font
}

// Bytes serializes the recorded operation stream, which makes determinism
// assertable at the operation level.
func (c *RecordingCanvas) Bytes() ([]byte, error) {
	return []byte(strings.Join(c.Ops, "\n")), nil
}

func (c *RecordingCanvas) WriteFile(path string) error {
	b, err := c.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// TextDrawn reports whether any DrawText call rendered the given text.
func (c *RecordingCanvas) TextDrawn(text string) bool {
	for _, t := range c.Texts {
		if t.Text == text {
			return true
		}
	}
	return false
}
