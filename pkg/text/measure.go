package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Metrics is the measurement of one string in the active font.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is ascent plus descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Measurer measures text. SetFont selects the font used by subsequent
// calls to Measure; spec is a font string such as "italic bold 22px serif".
type Measurer interface {
	SetFont(spec string)
	Measure(text string) Metrics
}

// FaceMeasurer measures text with font faces from a FaceCache.
type FaceMeasurer struct {
	faces  *FaceCache
	active font.Face
}

var _ Measurer = (*FaceMeasurer)(nil)

// NewFaceMeasurer creates a measurer over faces. A nil cache means the
// shared default cache.
func NewFaceMeasurer(faces *FaceCache) *FaceMeasurer {
	if faces == nil {
		faces = DefaultFaces()
	}
	m := &FaceMeasurer{faces: faces}
	m.SetFont(DefaultFont)
	return m
}

func (m *FaceMeasurer) SetFont(spec string) {
	m.active = m.faces.Face(spec)
}

// Measure returns the advance width of text and the ascent and descent of
// its ink bounding box, in pixels.
func (m *FaceMeasurer) Measure(text string) Metrics {
	bounds, advance := font.BoundString(m.active, text)
	return Metrics{
		Width:   toFloat(advance),
		Ascent:  -toFloat(bounds.Min.Y),
		Descent: toFloat(bounds.Max.Y),
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

var (
	defaultFaces     *FaceCache
	defaultFacesOnce sync.Once
)

// DefaultFaces returns a process-wide face cache.
func DefaultFaces() *FaceCache {
	defaultFacesOnce.Do(func() {
		defaultFaces = NewFaceCache()
	})
	return defaultFaces
}
