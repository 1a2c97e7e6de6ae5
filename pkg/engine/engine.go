/*
Package engine runs the whole pipeline for one page: parse, optional
scripts, layout and painting.

An Engine owns a layout engine and a display list which are reused
between pages, so an Engine must not be used from more than one
goroutine at a time.
*/
package engine

import (
	"image"
	"io"
	"math"

	"noddy/pkg/html"
	"noddy/pkg/layout"
	"noddy/pkg/render"
	"noddy/pkg/script"
	"noddy/pkg/text"
)

// Options configure layout and painting.
type Options struct {
	Width            float64 // viewport width in CSS pixels
	LineHeight       float64 // line height multiplier
	Margin           float64 // vertical margin of rules and line breaks
	RunScripts       bool    // execute <script> elements before layout
	DevicePixelRatio float64 // paint at this many device pixels per CSS pixel
	DebugHitboxes    bool    // shade link regions
	Faces            *text.FaceCache
}

func DefaultOptions() Options {
	return Options{
		Width:            800,
		LineHeight:       layout.DefaultLineHeight,
		Margin:           layout.DefaultMargin,
		RunScripts:       true,
		DevicePixelRatio: 1,
	}
}

type Engine struct {
	opts     Options
	layout   *layout.Engine
	list     *layout.DisplayList
	measurer *text.FaceMeasurer
}

func New(opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = DefaultOptions().Width
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = layout.DefaultLineHeight
	}
	if opts.Margin <= 0 {
		opts.Margin = layout.DefaultMargin
	}
	if opts.DevicePixelRatio <= 0 {
		opts.DevicePixelRatio = 1
	}
	if opts.Faces == nil {
		opts.Faces = text.DefaultFaces()
	}
	le := layout.NewEngine()
	le.SetLineHeight(opts.LineHeight)
	le.SetMargin(opts.Margin)
	return &Engine{
		opts:     opts,
		layout:   le,
		list:     layout.NewDisplayList(),
		measurer: text.NewFaceMeasurer(opts.Faces),
	}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Page is a laid out document. Its display list belongs to the engine and
// is valid until the next call of Load or Render.
type Page struct {
	Document  *html.Document
	List      *layout.DisplayList
	Metrics   layout.DocumentMetrics
	Console   []script.ConsoleMessage
	ScriptErr error
}

// Load parses src, runs its scripts if enabled and lays it out at the
// configured width. Script failures are recorded on the page.
func (e *Engine) Load(src string) *Page {
	doc := html.Parse(src)
	page := &Page{Document: doc, List: e.list}

	if e.opts.RunScripts {
		runner := script.NewRunner()
		if err := runner.Run(doc.Root); err != nil {
			tracer().Errorf("scripts: %v", err)
			page.ScriptErr = err
		}
		page.Console = runner.Console()
	}

	e.layout.Reset()
	e.list.Clear()
	page.Metrics = e.layout.Layout(doc.Root, e.list, layout.Constraints{MaxWidth: e.opts.Width}, e.measurer)
	tracer().Debugf("loaded page: %d entries, height %.1f", e.list.Len(), page.Metrics.Height)
	return page
}

// Frame is a painted page.
type Frame struct {
	*Page
	Image image.Image
	Width int // CSS pixels
	hits  *render.HitMap
}

// Render loads src and paints it. The canvas is the viewport width wide
// and tall enough for the document plus a bottom margin, which keeps the
// last line of text from being cut.
func (e *Engine) Render(src string) *Frame {
	return e.Paint(e.Load(src))
}

// Paint paints a loaded page.
func (e *Engine) Paint(page *Page) *Frame {
	width, height := e.frameSize(page)
	ratio := e.opts.DevicePixelRatio
	r := render.NewRenderer(int(math.Ceil(float64(width)*ratio)), int(math.Ceil(float64(height)*ratio)), e.opts.Faces)
	r.SetPixelRatio(ratio)
	r.Render(page.List)

	hits := render.BuildHitMap(page.List, e.measurer)
	if e.opts.DebugHitboxes {
		hits.DrawOverlay(r)
	}
	return &Frame{Page: page, Image: r.Image(), Width: width, hits: hits}
}

func (e *Engine) frameSize(page *Page) (int, int) {
	height := int(math.Ceil(math.Max(page.Metrics.Height+e.opts.Margin, 1)))
	return int(math.Ceil(e.opts.Width)), height
}

// WritePDF writes a loaded page as a single page PDF.
func (e *Engine) WritePDF(w io.Writer, page *Page) error {
	width, height := e.frameSize(page)
	return render.WritePDF(w, page.List, float64(width), float64(height))
}

// LinkAt returns the href of the link at (x, y) in CSS pixels.
func (f *Frame) LinkAt(x, y float64) (string, bool) {
	region, ok := f.hits.LinkAt(x, y)
	if !ok {
		return "", false
	}
	return region.Href, true
}

// Downscaled returns the frame image at one device pixel per CSS pixel.
func (f *Frame) Downscaled() image.Image {
	ratio := float64(f.Image.Bounds().Dx()) / float64(f.Width)
	if ratio <= 1 {
		return f.Image
	}
	return render.Downscale(f.Image, ratio)
}
