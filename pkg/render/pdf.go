package render

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"noddy/pkg/css"
	"noddy/pkg/layout"
	"noddy/pkg/text"
)

const (
	mmPerPx = 25.4 / 96
	ptPerPx = 0.75
)

type pdfFonts struct {
	serif *canvas.FontFamily
	mono  *canvas.FontFamily
}

var (
	loadedPDFFonts  *pdfFonts
	loadPDFFontsErr error
	pdfFontsOnce    sync.Once
)

func fontsForPDF() (*pdfFonts, error) {
	pdfFontsOnce.Do(func() {
		fonts := &pdfFonts{}
		if fonts.serif, loadPDFFontsErr = loadFamily("noddy-go", "serif"); loadPDFFontsErr != nil {
			return
		}
		if fonts.mono, loadPDFFontsErr = loadFamily("noddy-go-mono", "monospace"); loadPDFFontsErr != nil {
			return
		}
		loadedPDFFonts = fonts
	})
	return loadedPDFFonts, loadPDFFontsErr
}

func loadFamily(name, family string) (*canvas.FontFamily, error) {
	ff := canvas.NewFontFamily(name)
	for _, v := range []struct {
		bold, italic bool
		style        canvas.FontStyle
	}{
		{false, false, canvas.FontRegular},
		{true, false, canvas.FontBold},
		{false, true, canvas.FontItalic},
		{true, true, canvas.FontBold | canvas.FontItalic},
	} {
		ttf := text.FontSpec{Bold: v.bold, Italic: v.italic, Family: family}.TTF()
		if err := ff.LoadFont(ttf, 0, v.style); err != nil {
			return nil, fmt.Errorf("load %s font: %w", name, err)
		}
	}
	return ff, nil
}

// WritePDF writes list as a single page PDF of width x height CSS pixels.
func WritePDF(w io.Writer, list *layout.DisplayList, width, height float64) error {
	fonts, err := fontsForPDF()
	if err != nil {
		return err
	}
	pageW, pageH := width*mmPerPx, height*mmPerPx
	writer := pdf.New(w, pageW, pageH, nil)

	c := canvas.New(pageW, pageH)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(0, 0, canvas.Rectangle(pageW, pageH))

	list.Each(func(e layout.Entry) {
		if e.Node == nil {
			return
		}
		switch e.Kind {
		case layout.Marker:
			if e.Node.TagName != "hr" {
				return
			}
			style := e.Node.EffectiveStyle()
			ctx.SetFillColor(style.FillColor())
			ctx.SetStrokeColor(color.RGBA{})
			ctx.DrawPath(0, e.Y*mmPerPx, canvas.Rectangle(pageW, ruleThickness(style)*mmPerPx))
		case layout.TokenEntry:
			face := fonts.face(e.Node.EffectiveStyle())
			line := canvas.NewTextLine(face, e.Token, canvas.Left)
			ctx.DrawText(e.X*mmPerPx, e.Y*mmPerPx+face.Metrics().Ascent, line)
		}
	})

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (f *pdfFonts) face(style *css.Style) *canvas.FontFace {
	spec := text.ParseFontSpec(style.FontString())
	family := f.serif
	if spec.Monospace() {
		family = f.mono
	}
	fontStyle := canvas.FontRegular
	if spec.Bold {
		fontStyle = canvas.FontBold
	}
	if spec.Italic {
		fontStyle |= canvas.FontItalic
	}
	if style.Property(css.TextDecoration) == "underline" {
		return family.Face(spec.Size*ptPerPx, style.FillColor(), fontStyle, canvas.FontNormal, canvas.FontUnderline)
	}
	return family.Face(spec.Size*ptPerPx, style.FillColor(), fontStyle, canvas.FontNormal)
}
