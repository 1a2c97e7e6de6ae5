package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"noddy/pkg/css"
	"noddy/pkg/html"
	"noddy/pkg/layout"
	"noddy/pkg/text"
)

// Renderer paints display lists onto an RGBA canvas.
type Renderer struct {
	context *gg.Context
	faces   *text.FaceCache
	ratio   float64
}

// NewRenderer creates a renderer for a width x height pixel canvas. A nil
// face cache means the shared default, which is also what layout measures
// with.
func NewRenderer(width, height int, faces *text.FaceCache) *Renderer {
	if faces == nil {
		faces = text.DefaultFaces()
	}
	return &Renderer{context: gg.NewContext(width, height), faces: faces, ratio: 1}
}

// SetPixelRatio scales all drawing by ratio, for painting a display list
// laid out in CSS pixels onto a canvas of device pixels.
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		return
	}
	r.context.Identity()
	r.context.Scale(ratio, ratio)
	r.ratio = ratio
}

// Render clears the canvas to white and paints list in order.
func (r *Renderer) Render(list *layout.DisplayList) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	list.Each(r.drawEntry)
}

func (r *Renderer) drawEntry(e layout.Entry) {
	if e.Node == nil {
		return
	}
	switch e.Kind {
	case layout.Marker:
		if e.Node.TagName == "hr" {
			r.drawRule(e)
		}
	case layout.TokenEntry:
		r.drawToken(e)
	}
}

// drawRule paints a horizontal rule across the full canvas width.
func (r *Renderer) drawRule(e layout.Entry) {
	style := e.Node.EffectiveStyle()
	r.context.SetColor(style.FillColor())
	r.context.DrawRectangle(0, e.Y, float64(r.context.Width())/r.ratio, ruleThickness(style))
	r.context.Fill()
}

func ruleThickness(style *css.Style) float64 {
	if h, ok := css.ParseLength(style.Property(css.Height)); ok && h > 0 {
		return h
	}
	return 1
}

// drawToken paints a word with its top edge at the entry position.
func (r *Renderer) drawToken(e layout.Entry) {
	style := e.Node.EffectiveStyle()
	r.context.SetFontFace(r.faces.Face(style.FontString()))
	r.context.SetColor(style.FillColor())
	r.context.DrawStringAnchored(e.Token, e.X, e.Y, 0, 1)

	if style.Property(css.TextDecoration) == "underline" {
		w, h := r.context.MeasureString(e.Token)
		thickness := math.Max(1, style.FontSizePx()/12)
		underlineY := e.Y + h + thickness
		r.context.SetLineWidth(thickness)
		r.context.DrawLine(e.X, underlineY, e.X+w, underlineY)
		r.context.Stroke()
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

// link returns the href of the anchor n sits in, if any.
func link(n *html.Node) (string, bool) {
	a := n.Ancestor("a")
	if a == nil {
		return "", false
	}
	href, ok := a.GetAttribute("href")
	return href, ok
}
