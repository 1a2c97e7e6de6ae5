package css

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootStyleResolvesEveryProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "noddy.css")
	defer teardown()
	//
	root := NewStyle("html", nil)
	assert.Nil(t, root.Parent())
	for _, p := range Properties {
		v, ok := root.Own(p)
		assert.True(t, ok, "root defaults miss %s", p)
		assert.NotEmpty(t, v)
	}
}

func TestTagDefaultsReplaceRootMap(t *testing.T) {
	root := NewStyle("html", nil)
	h1 := NewStyle("h1", root)

	_, ok := h1.Own(FontFamily)
	assert.False(t, ok, "h1 map must not carry root properties")
	size, _ := h1.Own(FontSize)
	assert.Equal(t, "22px", size)
	assert.Equal(t, "serif", h1.Property(FontFamily))
	assert.Equal(t, "block", h1.Property(Display))
}

func TestInheritanceThroughChain(t *testing.T) {
	root := NewStyle("html", nil)
	body := NewStyle("body", root)
	a := NewStyle("A", body)
	b := NewStyle("b", a)

	assert.Equal(t, "blue", b.Property(Color))
	assert.Equal(t, "underline", b.Property(TextDecoration))
	assert.Equal(t, "bold", b.Property(FontWeight))
	assert.Equal(t, "#000000", body.Property(Color))
}

func TestParentlessTagStyleTerminatesAtRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "noddy.css")
	defer teardown()
	//
	p := NewStyle("p", nil)
	require.NotNil(t, p.Parent())
	assert.Same(t, Root(), p.Parent())
	for _, prop := range Properties {
		_, ok := p.Lookup(prop)
		assert.True(t, ok, "%s does not resolve", prop)
	}
}

func TestUnknownPropertyYieldsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "noddy.css")
	defer teardown()
	//
	s := NewStyle("div", NewStyle("html", nil))
	_, ok := s.Lookup(Property("margin"))
	assert.False(t, ok)
	assert.Equal(t, "", s.Property(Property("margin")))
}

func TestFontString(t *testing.T) {
	root := NewStyle("html", nil)
	assert.Equal(t, "normal normal 16px serif", root.FontString())

	h2 := NewStyle("h2", root)
	em := NewStyle("em", NewStyle("strong", h2))
	assert.Equal(t, "italic bold 21px serif", em.FontString())
}

func TestDisplayHelpers(t *testing.T) {
	root := NewStyle("html", nil)
	assert.False(t, root.IsBlock())
	assert.True(t, NewStyle("p", root).IsBlock())
	assert.True(t, NewStyle("script", root).IsHidden())
	assert.True(t, NewStyle("span", NewStyle("style", root)).IsHidden())
	assert.False(t, NewStyle("head", root).IsHidden())
	assert.False(t, NewStyle("title", NewStyle("head", root)).IsHidden())
}

func TestTagDefaultsCopy(t *testing.T) {
	props, ok := TagDefaults("hr")
	require.True(t, ok)
	props[Height] = "9px"
	assert.Equal(t, "1px", NewStyle("hr", nil).Property(Height))

	_, ok = TagDefaults("div")
	assert.False(t, ok)
}

func TestParseLength(t *testing.T) {
	v, ok := ParseLength("1px")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, ok = ParseLength(" 22 ")
	assert.True(t, ok)
	assert.Equal(t, 22.0, v)
	_, ok = ParseLength("auto")
	assert.False(t, ok)
}

func TestParseColor(t *testing.T) {
	tests := map[string]color.RGBA{
		"#000000": {0, 0, 0, 255},
		"#fff":    {255, 255, 255, 255},
		"#0645AD": {0x06, 0x45, 0xad, 255},
		"blue":    {0, 0, 255, 255},
		" Red ":   {255, 0, 0, 255},
	}
	for in, want := range tests {
		got, ok := ParseColor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"#12", "#zzzzzz", "notacolour", ""} {
		_, ok := ParseColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestFillColorAndSize(t *testing.T) {
	root := NewStyle("html", nil)
	a := NewStyle("a", root)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, a.FillColor())
	assert.Equal(t, 16.0, root.FontSizePx())
	assert.Equal(t, 20.0, NewStyle("h3", root).FontSizePx())
}
