package surface

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/kpi-donut/internal/dataview"
	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
	"github.com/iburimskiy/kpi-donut/internal/settings"
)

func render(t *testing.T, value float64, objects dataview.Objects, side float64) (*Canvas, *gauge.Renderer) {
	t.Helper()
	c := New(nil)
	r := gauge.New(c, nil)
	r.Update(gauge.UpdateOptions{
		DataViews: []*dataview.DataView{dataview.NewSingle("Completion", value, objects)},
		Viewport:  gauge.Viewport{Width: side, Height: side},
	})
	return c, r
}

func TestCanvasRecordsOneRing(t *testing.T) {
	c, r := render(t, 0.3, nil, 200)
	r.Update(gauge.UpdateOptions{
		DataViews: []*dataview.DataView{dataview.NewSingle("Completion", 0.6, nil)},
		Viewport:  gauge.Viewport{Width: 240, Height: 260},
	})

	w, h := c.Size()
	assert.Equal(t, 240.0, w)
	assert.Equal(t, 240.0, h)
	require.Len(t, c.Paths(), 2)
	assert.Equal(t, gauge.BackgroundClass, c.Paths()[0].Class)
	assert.Equal(t, gauge.ForegroundClass, c.Paths()[1].Class)
	require.Len(t, c.Texts(), 1)
	assert.Equal(t, "60.00%", c.Texts()[0].Text)

	_, ok := c.Placeholder()
	assert.False(t, ok)
}

func TestLabelCenteredWithRealFonts(t *testing.T) {
	tests := []struct {
		family string
		size   float64
		bold   bool
		italic bool
	}{
		{"Segoe UI", 10, false, false},
		{"Arial", 24, true, false},
		{"Georgia", 37, false, true},
		{"Helvetica", 72, true, true},
	}
	for _, tt := range tests {
		t.Run(fonts.Spec{Family: tt.family, Size: tt.size, Bold: tt.bold, Italic: tt.italic}.CSS(), func(t *testing.T) {
			objs := dataview.Objects{settings.ObjectName: {
				settings.PropEnableCustomFontSizes: true,
				settings.PropFontFamily:            tt.family,
				settings.PropFontSize:              tt.size,
				settings.PropFontBold:              tt.bold,
				settings.PropFontItalic:            tt.italic,
			}}
			c, _ := render(t, 0.4567, objs, 301)

			require.Len(t, c.Texts(), 1)
			box := c.Texts()[0].BBox()
			assert.Greater(t, box.W, 0.0)
			center := box.Center()
			assert.InDelta(t, 150.5, center.X, 0.5)
			assert.InDelta(t, 150.5, center.Y, 0.5)
		})
	}
}

func TestWriteSVGBound(t *testing.T) {
	c, r := render(t, 0.4567, nil, 200)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSVG(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200"`))
	assert.Contains(t, out, `<g id="arc-container">`)
	assert.Contains(t, out, `<g class="bg-circle">`)
	assert.Contains(t, out, `<g class="fore-circle">`)
	assert.Contains(t, out, `d="`+r.Frame().Foreground.String()+`"`)
	assert.Contains(t, out, `stroke-linecap="round"`)
	assert.Contains(t, out, `fill="none"`)
	assert.Contains(t, out, `id="percent"`)
	assert.Contains(t, out, ">45.67%</text>")
	assert.Contains(t, out, `fill="#FFFFFF"`)
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.NotContains(t, out, gauge.PlaceholderText)
}

func TestWriteSVGNamesMeasuredFace(t *testing.T) {
	c, _ := render(t, 0.4567, nil, 200)
	label := c.Texts()[0]
	require.Greater(t, label.box.W, 0.0)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSVG(&buf))
	out := buf.String()

	assert.Contains(t, out, `textLength="`+gauge.FormatNumber(label.box.W)+`"`)
	assert.Contains(t, out, `lengthAdjust="spacingAndGlyphs"`)
	assert.Contains(t, out, "px "+fonts.GoFamily+", "+label.Font.Family+";")
}

func TestWriteSVGPlaceholder(t *testing.T) {
	c := New(nil)
	r := gauge.New(c, nil)
	r.Update(gauge.UpdateOptions{Viewport: gauge.Viewport{Width: 320, Height: 180}})

	p, ok := c.Placeholder()
	require.True(t, ok)
	assert.Equal(t, 320.0, p.Width)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSVG(&buf))
	out := buf.String()

	assert.Contains(t, out, `width="320" height="180"`)
	assert.Contains(t, out, gauge.PlaceholderText)
	assert.Contains(t, out, "fill: red")
	assert.NotContains(t, out, "<path")
	assert.NotContains(t, out, "arc-container")
}

func TestRasterize(t *testing.T) {
	c, _ := render(t, 0.25, nil, 200)
	img, err := c.Rasterize()
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	def := settings.Defaults()
	assertPixel(t, img.At(0, 0), def.BackgroundColor)

	// Inside the first quarter of the foreground arc.
	fg := 100 - def.OuterLineWidth + def.AmendmentSize - 10
	x, y := polar(100, 100, fg, -math.Pi/4)
	assertPixel(t, img.At(x, y), def.OuterLineColor)

	// Only the background ring is drawn in the lower left.
	bg := 100 - def.InnerLineWidth - 10
	x, y = polar(100, 100, bg, 3*math.Pi/4)
	assertPixel(t, img.At(x, y), def.InnerLineColor)
}

func TestWritePNG(t *testing.T) {
	c, _ := render(t, 0.8, nil, 120)
	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestRasterizeEmptyCanvas(t *testing.T) {
	c := New(nil)
	_, err := c.Rasterize()
	assert.ErrorIs(t, err, ErrEmptyCanvas)
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, ParseColor("#ff0000"), ParseColor("red"))
	assert.Equal(t, ParseColor("#ffffff"), ParseColor(" White "))
	assert.Equal(t, ParseColor("#000000"), ParseColor("not-a-color"))
}

func polar(cx, cy, r, angle float64) (int, int) {
	return int(cx + r*math.Cos(angle)), int(cy + r*math.Sin(angle))
}

func assertPixel(t *testing.T, got interface{ RGBA() (r, g, b, a uint32) }, hex string) {
	t.Helper()
	want := ParseColor(hex).Color()
	gr, gg, gb, _ := got.RGBA()
	wr, wg, wb, _ := want.RGBA()
	assert.InDelta(t, float64(wr>>8), float64(gr>>8), 12, "red of %s", hex)
	assert.InDelta(t, float64(wg>>8), float64(gg>>8), 12, "green of %s", hex)
	assert.InDelta(t, float64(wb>>8), float64(gb>>8), 12, "blue of %s", hex)
}
