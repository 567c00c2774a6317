package pdf

import (
	"time"

	"github.com/invoiceforge/invoiceforge/internal/config"
	"github.com/invoiceforge/invoiceforge/internal/domain/invoice"
	"github.com/invoiceforge/invoiceforge/internal/i18n"
	"github.com/invoiceforge/invoiceforge/internal/logger"
	"github.com/invoiceforge/invoiceforge/internal/money"
	"github.com/invoiceforge/invoiceforge/internal/types"

	"github.com/shopspring/decimal"
)

// CanvasFactory creates a fresh canvas for one render.
type CanvasFactory func(size types.PageSize) (Canvas, error)

// Stage is one named step of the rendering pipeline. Stages run in order;
// the first failure aborts the whole render.
type Stage struct {
	Name string
	Run  func(*RenderContext) error
}

// Renderer is the standard layout engine. It deterministically transforms an
// invoiceable entity into canvas operations through a fixed stage pipeline.
// A renderer may be reused across renders; each render gets its own canvas.
type Renderer struct {
	font      Font
	fontSize  float64
	stages    []Stage
	newCanvas CanvasFactory
	log       *logger.Logger
}

var _ invoice.Renderer = (*Renderer)(nil)

type Option func(*Renderer)

// WithFont selects the font: a built-in name or an embedded family.
func WithFont(f Font) Option {
	return func(r *Renderer) { r.font = f }
}

// WithFontSize sets the base text size.
func WithFontSize(size float64) Option {
	return func(r *Renderer) { r.fontSize = size }
}

// WithStages replaces the default pipeline with an alternate stage list.
func WithStages(stages []Stage) Option {
	return func(r *Renderer) { r.stages = stages }
}

// WithCanvasFactory swaps the canvas implementation, mainly for tests.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(r *Renderer) { r.newCanvas = f }
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer creates a layout engine with the default pipeline, font and
// canvas.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		font:      DefaultFont(),
		fontSize:  DefaultFontSize,
		stages:    DefaultStages(),
		newCanvas: NewFpdfCanvas,
		log:       logger.L,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetFont changes the font. Must not be called while a render is in flight.
func (r *Renderer) SetFont(f Font) {
	r.font = f
}

// SetFontSize changes the base text size. Must not be called while a render
// is in flight.
func (r *Renderer) SetFontSize(size float64) {
	r.fontSize = size
}

// DefaultStages returns the standard pipeline in its fixed order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "setup", Run: stageSetup},
		{Name: "stamp", Run: stageStamp},
		{Name: "banner", Run: stageBanner},
		{Name: "addresses", Run: stageAddresses},
		{Name: "details", Run: stageDetails},
		{Name: "line_items", Run: stageLineItems},
		{Name: "totals", Run: stageTotals},
		{Name: "notes", Run: stageNotes},
		{Name: "page_numbers", Run: stagePageNumbers},
	}
}

// RenderToBytes runs the full pipeline and returns the finished document.
func (r *Renderer) RenderToBytes(inv invoice.Invoiceable) ([]byte, error) {
	canvas, err := r.render(inv)
	if err != nil {
		return nil, err
	}
	return canvas.Bytes()
}

// RenderToFile runs the full pipeline and writes the document to path.
func (r *Renderer) RenderToFile(inv invoice.Invoiceable, path string) error {
	canvas, err := r.render(inv)
	if err != nil {
		return err
	}
	return canvas.WriteFile(path)
}

func (r *Renderer) render(inv invoice.Invoiceable) (Canvas, error) {
	defaults := config.Get().Defaults

	size := inv.Page()
	if size == "" {
		size = types.PageSize(defaults.PageSize)
	}
	canvas, err := r.newCanvas(size)
	if err != nil {
		return nil, err
	}

	ctx := &RenderContext{
		canvas:   canvas,
		inv:      inv,
		defaults: defaults,
		font:     r.font,
		fontSize: r.fontSize,
	}
	for _, stage := range r.stages {
		if err := stage.Run(ctx); err != nil {
			r.log.Errorf("render stage %s failed: %v", stage.Name, err)
			return nil, err
		}
	}
	return canvas, nil
}

// RenderContext is the per-render state handed to each stage.
type RenderContext struct {
	canvas   Canvas
	inv      invoice.Invoiceable
	defaults config.DefaultsConfig
	font     Font
	fontSize float64
}

// Canvas exposes the drawing surface to custom stages.
func (ctx *RenderContext) Canvas() Canvas {
	return ctx.canvas
}

// Invoice exposes the entity being rendered to custom stages.
func (ctx *RenderContext) Invoice() invoice.Invoiceable {
	return ctx.inv
}

// t resolves a label through the invoice's translator override, falling back
// to the global translation table.
func (ctx *RenderContext) t(key string) string {
	return i18n.Lookup(ctx.inv.TranslatorOverride(), key)
}

func (ctx *RenderContext) currency() string {
	if c := ctx.inv.CurrencyCode(); c != "" {
		return c
	}
	return ctx.defaults.Currency
}

func (ctx *RenderContext) fmtMoney(d decimal.Decimal) string {
	return money.Format(d, ctx.currency())
}

func (ctx *RenderContext) dateLayout() string {
	if l := ctx.inv.DateLayout(); l != "" {
		return l
	}
	return ctx.defaults.DateFormat
}

func (ctx *RenderContext) fmtDate(t time.Time) string {
	return t.Format(ctx.dateLayout())
}

// logo resolves the invoice override, then the process default.
func (ctx *RenderContext) logo() *invoice.Logo {
	if l := ctx.inv.LogoSpec(); l != nil {
		return l
	}
	if ctx.defaults.InvoiceLogo != "" {
		return &invoice.Logo{Path: ctx.defaults.InvoiceLogo}
	}
	return nil
}

func init() {
	invoice.RegisterDefaultRenderer(NewRenderer())
}
