package main

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"noddy/pkg/engine"
)

// pageView shows a rendered frame and follows links on tap.
type pageView struct {
	widget.BaseWidget

	image    *canvas.Image
	frame    *engine.Frame
	overLink bool
	onLink   func(href string)
}

var (
	_ fyne.Tappable      = (*pageView)(nil)
	_ desktop.Hoverable  = (*pageView)(nil)
	_ desktop.Cursorable = (*pageView)(nil)
)

func newPageView(onLink func(string)) *pageView {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillOriginal
	v := &pageView{image: img, onLink: onLink}
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// Show replaces the displayed frame.
func (v *pageView) Show(f *engine.Frame) {
	v.frame = f
	v.image.Image = f.Downscaled()
	v.image.Refresh()
	v.Refresh()
}

func (v *pageView) linkAt(pos fyne.Position) (string, bool) {
	if v.frame == nil {
		return "", false
	}
	return v.frame.LinkAt(float64(pos.X), float64(pos.Y))
}

func (v *pageView) Tapped(ev *fyne.PointEvent) {
	href, ok := v.linkAt(ev.Position)
	if !ok {
		return
	}
	log.Printf("click %s", href)
	if v.onLink != nil {
		v.onLink(href)
	}
}

func (v *pageView) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

func (v *pageView) MouseMoved(ev *desktop.MouseEvent) {
	_, v.overLink = v.linkAt(ev.Position)
}

func (v *pageView) MouseOut() {
	v.overLink = false
}

func (v *pageView) Cursor() desktop.Cursor {
	if v.overLink {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}
