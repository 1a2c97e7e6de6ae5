package visualtest

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noddy/pkg/engine"
)

const page = `<body><h1>Heading</h1><p>Some <b>bold</b> and <i>italic</i> words, then a
<a href="/x">link</a>.</p><hr><p>After the rule.</p></body>`

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestCompare_Identical(t *testing.T) {
	a := solid(10, 10, color.White)
	res, err := Compare(a, solid(10, 10, color.White), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Equal(t, 100, res.TotalPixels)
	assert.Zero(t, res.DifferentPixels)
}

func TestCompare_Differences(t *testing.T) {
	a := solid(10, 10, color.White)
	b := solid(10, 10, color.White)
	b.Set(3, 3, color.Black)

	opts := DefaultOptions()
	opts.KeepDiff = true
	res, err := Compare(a, b, opts)
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 1, res.DifferentPixels)
	assert.Equal(t, 255, res.MaxDifference)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(3, 3))

	opts.MaxDifferentPercent = 1
	res, _ = Compare(a, b, opts)
	assert.True(t, res.Match)

	// the black pixel shifted by one is found within the radius
	c := solid(10, 10, color.White)
	c.Set(4, 3, color.Black)
	fuzzy := CompareOptions{Tolerance: 2, FuzzyRadius: 1}
	res, _ = Compare(c, b, fuzzy)
	assert.True(t, res.Match)
}

func TestCompare_Size(t *testing.T) {
	_, err := Compare(solid(2, 2, color.White), solid(3, 2, color.White), DefaultOptions())
	assert.Error(t, err)
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, SavePNG(solid(4, 4, color.Black), a))
	require.NoError(t, SavePNG(solid(4, 4, color.Black), b))
	res, err := CompareFiles(a, b, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = CompareFiles(a, filepath.Join(dir, "missing.png"), DefaultOptions())
	assert.Error(t, err)
}

func TestRender_Deterministic(t *testing.T) {
	first := engine.New(engine.DefaultOptions()).Render(page)
	second := engine.New(engine.DefaultOptions()).Render(page)
	res, err := Compare(first.Image, second.Image, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match, "%d pixels differ", res.DifferentPixels)
}

func TestRender_PixelRatioMatchesBase(t *testing.T) {
	base := engine.New(engine.DefaultOptions()).Render(page)

	opts := engine.DefaultOptions()
	opts.DevicePixelRatio = 2
	hidpi := engine.New(opts).Render(page).Downscaled()

	res, err := Compare(hidpi, base.Image, CompareOptions{Tolerance: 96, FuzzyRadius: 1, MaxDifferentPercent: 5})
	require.NoError(t, err)
	assert.True(t, res.Match, "%d of %d pixels differ", res.DifferentPixels, res.TotalPixels)
}
