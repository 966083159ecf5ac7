// Package surface implements gauge.Surface as a retained display list that
// can be encoded as an SVG document or rasterized with gogpu/gg.
package surface

import (
	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
)

// Canvas keeps everything drawn since the last Reset. Text is measured with
// real font metrics from its fonts.Library.
type Canvas struct {
	fonts *fonts.Library

	width, height float64
	background    string

	paths       []gauge.PathElement
	texts       []*Text
	placeholder *placeholderItem
}

// New returns an empty Canvas measuring text with lib. A nil lib uses a
// fresh library backed by the Go fonts.
func New(lib *fonts.Library) *Canvas {
	if lib == nil {
		lib = fonts.NewLibrary()
	}
	return &Canvas{fonts: lib}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// Background returns the fill behind the gauge, empty for none.
func (c *Canvas) Background() string {
	return c.background
}

// Paths returns the drawn arcs in paint order.
func (c *Canvas) Paths() []gauge.PathElement {
	return c.paths
}

// Texts returns the drawn labels in paint order.
func (c *Canvas) Texts() []*Text {
	return c.texts
}

// Placeholder returns the placeholder message, if one is drawn.
func (c *Canvas) Placeholder() (gauge.Placeholder, bool) {
	if c.placeholder == nil {
		return gauge.Placeholder{}, false
	}
	return c.placeholder.Placeholder, true
}

// Reset implements gauge.Surface.
func (c *Canvas) Reset(width, height float64, background string) {
	c.width = width
	c.height = height
	c.background = background
	c.paths = nil
	c.texts = nil
	c.placeholder = nil
}

// DrawPath implements gauge.Surface.
func (c *Canvas) DrawPath(p gauge.PathElement) {
	c.paths = append(c.paths, p)
}

// DrawText implements gauge.Surface.
func (c *Canvas) DrawText(t gauge.TextElement) gauge.TextNode {
	n := &Text{TextElement: t, box: c.measure(t.Text, t.Font), family: c.fonts.Resolve(t.Font)}
	c.texts = append(c.texts, n)
	return n
}

// DrawPlaceholder implements gauge.Surface. The message is centered in the
// placeholder box.
func (c *Canvas) DrawPlaceholder(p gauge.Placeholder) {
	box := c.measure(p.Text, p.Font)
	item := &placeholderItem{Placeholder: p, width: box.W, family: c.fonts.Resolve(p.Font)}
	item.x, item.y = gauge.CenterText(box, gauge.Point{X: p.Width / 2, Y: p.Height / 2})
	c.placeholder = item
}

func (c *Canvas) measure(label string, spec fonts.Spec) gauge.Rect {
	box, err := c.fonts.Measure(label, spec)
	if err != nil {
		gauge.Logger().Warn("surface: measure text", "text", label, "font", spec.CSS(), "error", err)
		return gauge.Rect{}
	}
	return gauge.Rect{X: box.X, Y: box.Y, W: box.W, H: box.H}
}

// Text is a drawn label. Its anchor is the left end of the baseline.
type Text struct {
	gauge.TextElement
	x, y   float64
	box    gauge.Rect
	family string // measured family
}

// Position returns the anchor.
func (t *Text) Position() (x, y float64) {
	return t.x, t.y
}

// BBox implements gauge.TextNode.
func (t *Text) BBox() gauge.Rect {
	return gauge.Rect{X: t.box.X + t.x, Y: t.box.Y + t.y, W: t.box.W, H: t.box.H}
}

// MoveTo implements gauge.TextNode.
func (t *Text) MoveTo(x, y float64) {
	t.x, t.y = x, y
}

type placeholderItem struct {
	gauge.Placeholder
	x, y   float64
	width  float64
	family string
}
