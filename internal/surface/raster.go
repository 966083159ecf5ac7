package surface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
)

// ErrEmptyCanvas is returned when rasterizing a canvas without area.
var ErrEmptyCanvas = errors.New("surface: canvas has no area")

// Rasterize paints the canvas into a new RGBA image.
func (c *Canvas) Rasterize() (image.Image, error) {
	dc, err := c.paint()
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	return dc.Image(), nil
}

// WritePNG rasterizes the canvas and encodes it as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	dc, err := c.paint()
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("surface: encode png: %w", err)
	}
	return nil
}

func (c *Canvas) paint() (*gg.Context, error) {
	w, h := int(math.Ceil(c.width)), int(math.Ceil(c.height))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}

	dc := gg.NewContext(w, h)
	if c.background != "" {
		dc.ClearWithColor(ParseColor(c.background))
	}

	for _, p := range c.paths {
		if p.Arc.Empty() {
			continue
		}
		dc.ClearPath()
		dc.SetColor(ParseColor(p.Stroke).Color())
		dc.SetLineWidth(p.StrokeWidth)
		dc.SetLineCap(gg.LineCapRound)
		start, end := p.Arc.Start, p.Arc.Start+p.Arc.Sweep()
		if p.Arc.Full() {
			start, end = 0, 2*math.Pi
		}
		dc.DrawArc(p.Arc.CX, p.Arc.CY, p.Arc.Radius, start, end)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("surface: stroke %s: %w", p.Class, err)
		}
	}

	for _, t := range c.texts {
		if err := c.drawString(dc, t.Text, t.Font, t.Color, t.x, t.y); err != nil {
			dc.Close()
			return nil, err
		}
	}
	if p := c.placeholder; p != nil {
		if err := c.drawString(dc, p.Text, p.Font, p.Color, p.x, p.y); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func (c *Canvas) drawString(dc *gg.Context, s string, spec fonts.Spec, color string, x, y float64) error {
	face, err := c.fonts.Face(spec)
	if err != nil {
		return fmt.Errorf("surface: font for %q: %w", s, err)
	}
	dc.SetFont(face)
	dc.SetColor(ParseColor(color).Color())
	dc.DrawString(s, x, y)
	return nil
}

// ParseColor understands hex colors ("#rgb", "#rrggbb", "#rrggbbaa") and
// SVG color keywords. Anything else paints black.
func ParseColor(s string) gg.RGBA {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return gg.Hex(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return gg.FromColor(c)
	}
	gauge.Logger().Warn("surface: unknown color", "color", s)
	return gg.Hex("#000000")
}
