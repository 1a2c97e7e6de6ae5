package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParseColor parses "#rgb", "#rrggbb" or a CSS colour keyword.
func ParseColor(val string) (color.RGBA, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if strings.HasPrefix(val, "#") {
		return parseHex(val[1:])
	}
	c, ok := colornames.Map[val]
	return c, ok
}

func parseHex(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, true
}

// FillColor returns the resolved colour of s, black if it does not parse.
func (s *Style) FillColor() color.RGBA {
	if c, ok := ParseColor(s.Property(Color)); ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

// FontSizePx returns the resolved font size in pixels.
func (s *Style) FontSizePx() float64 {
	if px, ok := ParseLength(s.Property(FontSize)); ok {
		return px
	}
	px, _ := ParseLength(rootDefaults[FontSize])
	return px
}
