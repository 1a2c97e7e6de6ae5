package text

import (
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont is the font string of the root style.
const DefaultFont = "normal normal 16px serif"

const defaultSize = 16.0

// FontSpec is a parsed font string.
type FontSpec struct {
	Italic bool
	Bold   bool
	Size   float64 // pixels
	Family string
}

// ParseFontSpec parses a "style weight size family" font string.
// Unparseable parts fall back to the defaults of DefaultFont.
func ParseFontSpec(spec string) FontSpec {
	fs := FontSpec{Size: defaultSize, Family: "serif"}
	parts := strings.Fields(spec)
	for i, part := range parts {
		switch p := strings.ToLower(part); {
		case p == "italic" || p == "oblique":
			fs.Italic = true
		case p == "bold" || p == "bolder":
			fs.Bold = true
		case isNumericWeight(p):
			fs.Bold = p >= "600"
		case strings.HasSuffix(p, "px"):
			if v, err := strconv.ParseFloat(strings.TrimSuffix(p, "px"), 64); err == nil && v > 0 {
				fs.Size = v
			}
			if i+1 < len(parts) {
				fs.Family = strings.ToLower(strings.Join(parts[i+1:], " "))
			}
			return fs
		}
	}
	return fs
}

func isNumericWeight(p string) bool {
	if len(p) != 3 || !strings.HasSuffix(p, "00") {
		return false
	}
	return p[0] >= '1' && p[0] <= '9'
}

// Monospace reports whether the family asks for a fixed-pitch font.
func (fs FontSpec) Monospace() bool {
	return strings.Contains(fs.Family, "mono") || strings.Contains(fs.Family, "courier")
}

// TTF returns the embedded font file used for fs.
func (fs FontSpec) TTF() []byte {
	switch {
	case fs.Monospace() && fs.Bold && fs.Italic:
		return gomonobolditalic.TTF
	case fs.Monospace() && fs.Bold:
		return gomonobold.TTF
	case fs.Monospace() && fs.Italic:
		return gomonoitalic.TTF
	case fs.Monospace():
		return gomono.TTF
	case fs.Bold && fs.Italic:
		return gobolditalic.TTF
	case fs.Bold:
		return gobold.TTF
	case fs.Italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// FaceCache hands out font faces for font strings. Faces are sized so
// that one point equals one pixel.
type FaceCache struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font // by font file variant
	faces map[string]font.Face      // by font string
}

func NewFaceCache() *FaceCache {
	return &FaceCache{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[string]font.Face),
	}
}

// Face returns the face for a font string. The Go fonts are compiled in,
// so this cannot fail.
func (c *FaceCache) Face(spec string) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	if face, ok := c.faces[spec]; ok {
		return face
	}
	fs := ParseFontSpec(spec)
	f := c.font(fs)
	face := truetype.NewFace(f, &truetype.Options{Size: fs.Size, DPI: 72, Hinting: font.HintingNone})
	c.faces[spec] = face
	tracer().Debugf("new face %q -> %+v", spec, fs)
	return face
}

func (c *FaceCache) font(fs FontSpec) *truetype.Font {
	key := variantKey(fs)
	if f, ok := c.fonts[key]; ok {
		return f
	}
	f, err := truetype.Parse(fs.TTF())
	if err != nil {
		// the embedded fonts are known good
		panic(err)
	}
	c.fonts[key] = f
	return f
}

func variantKey(fs FontSpec) string {
	return strconv.FormatBool(fs.Monospace()) + strconv.FormatBool(fs.Bold) + strconv.FormatBool(fs.Italic)
}
