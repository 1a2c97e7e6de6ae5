package render

import (
	"noddy/pkg/layout"
	"noddy/pkg/text"
)

// Region is the clickable area of one link token.
type Region struct {
	X, Y, Width, Height float64
	Href                string
	Entry               layout.Entry
}

func (rg Region) contains(x, y float64) bool {
	return x >= rg.X && x < rg.X+rg.Width && y >= rg.Y && y < rg.Y+rg.Height
}

// HitMap maps canvas positions to links.
type HitMap struct {
	regions []Region
}

// BuildHitMap collects a region for every token inside an <a href>. The
// region is anchored at the top-left entry position and measured with m.
func BuildHitMap(list *layout.DisplayList, m text.Measurer) *HitMap {
	hm := &HitMap{}
	list.Each(func(e layout.Entry) {
		if e.Kind != layout.TokenEntry || e.Node == nil {
			return
		}
		href, ok := link(e.Node)
		if !ok {
			return
		}
		m.SetFont(e.Node.EffectiveStyle().FontString())
		metrics := m.Measure(e.Token)
		hm.regions = append(hm.regions, Region{
			X:      e.X,
			Y:      e.Y,
			Width:  metrics.Width,
			Height: metrics.Height(),
			Href:   href,
			Entry:  e,
		})
	})
	tracer().Debugf("hit map has %d link regions", len(hm.regions))
	return hm
}

// LinkAt returns the region under (x, y). Later regions win, matching
// paint order.
func (hm *HitMap) LinkAt(x, y float64) (Region, bool) {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].contains(x, y) {
			return hm.regions[i], true
		}
	}
	return Region{}, false
}

func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// DrawOverlay shades every link region on r's canvas.
func (hm *HitMap) DrawOverlay(r *Renderer) {
	r.context.SetRGBA(1, 0, 0, 0.25)
	for _, rg := range hm.regions {
		r.context.DrawRectangle(rg.X, rg.Y, rg.Width, rg.Height)
	}
	r.context.Fill()
}
