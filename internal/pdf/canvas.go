package pdf

// Canvas is the abstract drawing surface the layout engine issues operations
// against. The concrete implementation wraps a document-drawing library; a
// recording implementation backs the renderer tests.
type Canvas interface {
	// SetFont activates a font. Embedded families are registered on first
	// activation; a missing or unreadable font file is a fatal render error.
	SetFont(font Font) error
	SetFontSize(size float64)

	// MeasureColumnWidths returns each column's natural content-driven width
	// including cell padding, honoring the style's header/bold settings.
	MeasureColumnWidths(rows [][]string, style TableStyle) []float64
	// DrawTable renders rows at the current cursor and advances it, returning
	// the drawn extent.
	DrawTable(rows [][]string, style TableStyle) (Extent, error)

	// DrawBoundingBox runs fn with the cursor and margins constrained to box,
	// restores the previous flow position afterwards, and returns the cursor
	// position reached inside the box.
	DrawBoundingBox(box Box, fn func() error) (endY float64, err error)

	CursorY() float64
	MoveCursorTo(y float64)

	// DrawImage renders a raster or vector image and returns its rendered
	// height in page units.
	DrawImage(img ImageSpec) (float64, error)
	// DrawText renders wrapped text at the current cursor and advances it.
	// Rotated text is positioned, not flowed.
	DrawText(text string, style TextStyle) error
	// DrawRule draws a horizontal rule across the content width at the cursor.
	DrawRule()

	PageCount() int
	// NumberPages writes "<page> / <total>" style text on every page at a
	// fixed offset from the bottom-right corner.
	NumberPages(format string, fromRight, fromBottom float64)

	ContentWidth() float64
	LeftMargin() float64

	Bytes() ([]byte, error)
	WriteFile(path string) error
}

// Extent is a drawn width/height pair.
type Extent struct {
	Width  float64
	Height float64
}

// Box is an absolutely positioned region. Height zero means unbounded.
type Box struct {
	X, Y, W, H float64
}

// ImageSpec positions an image file on the page. Width/Height zero means
// natural size at the image's DPI.
type ImageSpec struct {
	Path   string
	X, Y   float64
	Width  float64
	Height float64
}

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// TextStyle controls a single DrawText call.
type TextStyle struct {
	Bold     bool
	Size     float64 // 0 = current font size
	Align    string  // "L", "C", "R"; empty = "L"
	Rotation float64 // degrees counter-clockwise about the text anchor
	Color    *Color  // nil = black
	Width    float64 // wrap width; 0 = full content width
}

// TableStyle controls a single DrawTable call.
type TableStyle struct {
	ColumnWidths    []float64 // empty = natural widths
	Aligns          []string  // per column; missing entries default to "L"
	HeaderBold      bool      // render first row bold on a filled band
	Banding         bool      // alternate row background for readability
	BoldColumns     []int     // column indexes rendered bold in content rows
	CellHeight      float64   // 0 = derived from font size
	FontSize        float64   // 0 = current font size
	LastRowFontSize float64   // 0 = same as FontSize
	OriginX         *float64  // nil = left margin
}
