package layout

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noddy/pkg/html"
	"noddy/pkg/text"
)

// monoMeasurer gives every character the same advance and every string the
// same height, so positions can be computed by hand.
type monoMeasurer struct {
	advance float64
	fonts   []string
}

func (m *monoMeasurer) SetFont(spec string) {
	m.fonts = append(m.fonts, spec)
}

func (m *monoMeasurer) Measure(s string) text.Metrics {
	return text.Metrics{Width: float64(len(s)) * m.advance, Ascent: 8, Descent: 2}
}

func layout(t *testing.T, markup string, maxWidth float64) (*html.Document, *DisplayList, DocumentMetrics) {
	t.Helper()
	doc := html.Parse(markup)
	require.NotNil(t, doc.Root)
	list := NewDisplayList()
	metrics := NewEngine().Layout(doc.Root, list, Constraints{MaxWidth: maxWidth}, &monoMeasurer{advance: 10})
	return doc, list, metrics
}

func tokens(list *DisplayList) []string {
	var out []string
	list.Each(func(e Entry) {
		if e.Kind == TokenEntry {
			out = append(out, e.Token)
		}
	})
	return out
}

func TestLayout_InlineFirstLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "noddy.layout")
	defer teardown()
	//
	doc, list, metrics := layout(t, "<span>ab cd</span>", 1000)
	require.Equal(t, 2, list.Len())
	assert.Equal(t, Entry{Kind: TokenEntry, X: 0, Y: 10, Node: doc.Root.Children[0], Token: "ab"}, list.At(0))
	assert.Equal(t, 30.0, list.At(1).X)
	assert.Equal(t, 10.0, list.At(1).Y)
	assert.Equal(t, DocumentMetrics{Width: 60, Height: 10}, metrics)

	box := doc.Root.Children[0].Box
	require.NotNil(t, box)
	assert.Equal(t, html.Box{Top: 0, Left: 0, Width: 60, Height: 10}, *box)
}

func TestLayout_BlockText(t *testing.T) {
	_, list, metrics := layout(t, "<p>Hello world</p>", 1000)
	require.Equal(t, []string{"Hello", "world"}, tokens(list))
	assert.Equal(t, 0.0, list.At(0).X)
	assert.Equal(t, 12.5, list.At(0).Y)
	assert.Equal(t, 60.0, list.At(1).X)
	assert.Equal(t, 12.5, list.At(1).Y)
	assert.Equal(t, DocumentMetrics{Width: 120, Height: 12.5}, metrics)
}

func TestLayout_Wrap(t *testing.T) {
	_, list, _ := layout(t, "<span>aaaa bbbb cccc</span>", 100)
	require.Equal(t, 3, list.Len())
	assert.Equal(t, [2]float64{0, 10}, [2]float64{list.At(0).X, list.At(0).Y})
	// exactly filling the line does not wrap
	assert.Equal(t, [2]float64{50, 10}, [2]float64{list.At(1).X, list.At(1).Y})
	assert.Equal(t, [2]float64{0, 22.5}, [2]float64{list.At(2).X, list.At(2).Y})
}

func TestLayout_SkipsEmptyTokens(t *testing.T) {
	_, list, _ := layout(t, "<span>a  b \n c</span>", 1000)
	assert.Equal(t, []string{"a", "b", "c"}, tokens(list))
}

func TestLayout_WrapBound(t *testing.T) {
	r := rand.New(rand.NewSource(14))
	words := make([]string, 200)
	for i := range words {
		words[i] = strings.Repeat("x", 1+r.Intn(12))
	}
	const maxWidth = 150.0
	_, list, _ := layout(t, "<p>"+strings.Join(words, " ")+"</p>", maxWidth)
	require.Equal(t, len(words), list.Len())
	list.Each(func(e Entry) {
		width := float64(len(e.Token)+1) * 10
		if e.X > 0 {
			assert.LessOrEqual(t, e.X+width, maxWidth, "token %q at x=%f", e.Token, e.X)
		}
	})
}

func TestLayout_OversizedToken(t *testing.T) {
	_, list, _ := layout(t, "<span>abcdefghij</span>", 50)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, 0.0, list.At(0).X)
	assert.Equal(t, 22.5, list.At(0).Y)
}

func TestLayout_HorizontalRule(t *testing.T) {
	doc, list, metrics := layout(t, "<p>a<hr>b</p>", 1000)
	require.Equal(t, 3, list.Len())

	rule := list.At(1)
	assert.Equal(t, Marker, rule.Kind)
	assert.Equal(t, "hr", rule.Node.TagName)
	assert.Equal(t, 0.0, rule.X)
	assert.Equal(t, 28.5, rule.Y)

	assert.Equal(t, html.Box{Top: 12.5, Left: 20, Height: 24}, *rule.Node.Box)
	assert.Equal(t, 65.0, list.At(2).Y)
	assert.Equal(t, 65.0, metrics.Height)
	assert.Equal(t, 20.0, metrics.Width)
	assert.Equal(t, 3, len(doc.Root.Children))
}

func TestLayout_LineBreak(t *testing.T) {
	doc, list, _ := layout(t, "<span>a<br>b</span>", 1000)
	require.Equal(t, []string{"a", "b"}, tokens(list))
	assert.Equal(t, 0.0, list.At(1).X)
	assert.Equal(t, 26.0, list.At(1).Y)

	br := doc.Root.Children[1]
	assert.Equal(t, "br", br.TagName)
	assert.Equal(t, html.Box{Top: 10, Left: 20, Height: 16}, *br.Box)
}

func TestLayout_DisplayNone(t *testing.T) {
	doc, list, _ := layout(t, "<p><script>var a = 1;</script><style>b</style>x</p>", 1000)
	assert.Equal(t, []string{"x"}, tokens(list))
	script, style := doc.Root.Children[0], doc.Root.Children[1]
	assert.Nil(t, script.Box)
	assert.Nil(t, script.Children[0].Box)
	assert.Nil(t, style.Box)
	assert.Equal(t, 12.5, list.At(0).Y)
}

func TestLayout_TitleTextIsLaidOut(t *testing.T) {
	_, list, _ := layout(t, "<html><head><title>My Page</title></head><body><p>hi</p></body></html>", 1000)
	assert.Equal(t, []string{"My", "Page", "hi"}, tokens(list))
}

func TestLayout_UnclosedTitleKeepsBody(t *testing.T) {
	doc, list, metrics := layout(t, "<html><head><title>T</head><body><p>hello world</p></body></html>", 1000)
	head := doc.Root.Children[0]
	require.Len(t, head.Children, 2)
	body := head.Children[1]
	require.Equal(t, "body", body.TagName)

	assert.Equal(t, []string{"T", "hello", "world"}, tokens(list))
	assert.NotNil(t, body.Box)
	assert.Greater(t, metrics.Width, 0.0)
	assert.Greater(t, metrics.Height, 0.0)
}

func TestLayout_InlineAfterBlockRestartsLine(t *testing.T) {
	_, list, _ := layout(t, "<p>foo <b>bar</b> baz</p>", 1000)
	require.Equal(t, []string{"foo", "bar", "baz"}, tokens(list))
	assert.Equal(t, 0.0, list.At(0).X)
	assert.Equal(t, 12.5, list.At(0).Y)
	assert.Equal(t, 40.0, list.At(1).X)
	assert.Equal(t, 12.5, list.At(1).Y)
	assert.Equal(t, 0.0, list.At(2).X)
	assert.Equal(t, 25.0, list.At(2).Y)
}

func TestLayout_Fonts(t *testing.T) {
	doc := html.Parse("<span><b>x</b><i>y</i></span>")
	m := &monoMeasurer{advance: 10}
	NewEngine().Layout(doc.Root, NewDisplayList(), Constraints{MaxWidth: 100}, m)
	assert.Contains(t, m.fonts, "normal bold 16px serif")
	assert.Contains(t, m.fonts, "italic normal 16px serif")
}

func TestLayout_Reset(t *testing.T) {
	doc := html.Parse("<p>one two three four five</p>")
	m := &monoMeasurer{advance: 10}
	c := Constraints{MaxWidth: 80}

	fresh := NewDisplayList()
	want := NewEngine().Layout(doc.Root, fresh, c, m)

	le := NewEngine()
	le.Layout(doc.Root, NewDisplayList(), c, m)
	carried := NewDisplayList()
	le.Layout(doc.Root, carried, c, m)
	assert.Greater(t, carried.At(0).Y, fresh.At(0).Y)

	le.Reset()
	again := NewDisplayList()
	got := le.Layout(doc.Root, again, c, m)
	assert.Equal(t, want, got)
	assert.Equal(t, fresh.Entries(), again.Entries())
}

func TestLayout_Settings(t *testing.T) {
	doc := html.Parse("<span>a<br>b</span>")
	le := NewEngine()
	le.SetMargin(10)
	le.SetLineHeight(2)
	list := NewDisplayList()
	le.Layout(doc.Root, list, Constraints{MaxWidth: 1000}, &monoMeasurer{advance: 10})
	assert.Equal(t, 20.0, list.At(1).Y)
}

func TestLayout_NilRoot(t *testing.T) {
	list := NewDisplayList()
	metrics := NewEngine().Layout(nil, list, Constraints{MaxWidth: 100}, &monoMeasurer{advance: 10})
	assert.Zero(t, metrics)
	assert.Zero(t, list.Len())
}

func TestLayout_FaceMeasurer(t *testing.T) {
	doc := html.Parse("<p>The quick brown fox jumps over the lazy dog</p>")
	list := NewDisplayList()
	metrics := NewEngine().Layout(doc.Root, list, Constraints{MaxWidth: 120}, text.NewFaceMeasurer(nil))
	assert.Equal(t, 9, list.Len())
	assert.Greater(t, metrics.Height, 40.0)
	assert.LessOrEqual(t, metrics.Width, 200.0)
}

func TestDisplayList(t *testing.T) {
	list := NewDisplayList()
	n := html.NewElement("hr", nil, nil)
	list.Add(1, 2, n, "")
	list.Add(3, 4, n, "word")
	require.Equal(t, 2, list.Len())
	assert.Equal(t, Marker, list.At(0).Kind)
	assert.Equal(t, TokenEntry, list.At(1).Kind)

	entries := list.Entries()
	entries[0].X = 99
	assert.Equal(t, 1.0, list.At(0).X)

	list.Clear()
	assert.Zero(t, list.Len())
}
