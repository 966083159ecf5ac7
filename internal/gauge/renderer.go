// Package gauge draws a donut percentage gauge: a background ring, an arc
// proportional to a single measure and a centered percentage label.
package gauge

import (
	"math"

	"github.com/iburimskiy/kpi-donut/internal/dataview"
	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/settings"
	"github.com/iburimskiy/kpi-donut/internal/tooltip"
)

const (
	// PlaceholderText is shown when no measure is bound.
	PlaceholderText  = "Please add a measure"
	PlaceholderColor = "red"

	placeholderFontSize = 12

	// ringInset keeps round caps of both rings inside the square.
	ringInset = 10
)

// State is the renderer's display state.
type State int

const (
	StateEmpty State = iota
	StateBound
)

func (s State) String() string {
	if s == StateBound {
		return "bound"
	}
	return "empty"
}

// Viewport is the area the host grants, in arbitrary units.
type Viewport struct {
	Width, Height float64
}

// UpdateOptions is one host update event.
type UpdateOptions struct {
	DataViews []*dataview.DataView
	Viewport  Viewport
}

// TooltipBinder is the host hover-tracking capability.
type TooltipBinder interface {
	AddTooltip(target tooltip.Target, info tooltip.InfoFunc)
	Clear()
}

// Frame records the geometry of the last bound render pass.
type Frame struct {
	Side       float64
	Center     Point
	Value      float64
	Percent    float64
	Sweep      float64
	Background Arc
	Foreground Arc
	Label      string
	LabelFont  fonts.Spec
	Tooltip    tooltip.Datum
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithParser replaces the settings parser.
func WithParser(p settings.Parser) Option {
	return func(r *Renderer) {
		if p != nil {
			r.parser = p
		}
	}
}

// Renderer draws the gauge into a Surface on every Update. It keeps the
// settings of the last pass; nothing else survives an update.
type Renderer struct {
	surface  Surface
	tooltips TooltipBinder
	parser   settings.Parser

	settings settings.Donut
	state    State
	frame    Frame
}

// New returns a Renderer drawing into surface. A nil surface violates the
// host contract and panics. A nil tooltips discards tooltip bindings.
func New(surface Surface, tooltips TooltipBinder, opts ...Option) *Renderer {
	if surface == nil {
		panic("gauge: nil surface")
	}
	if tooltips == nil {
		tooltips = tooltip.NewWrapper(nil)
	}
	r := &Renderer{
		surface:  surface,
		tooltips: tooltips,
		parser:   settings.NewParser(settings.Defaults()),
		settings: settings.Defaults(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the state entered by the last Update.
func (r *Renderer) State() State { return r.state }

// Settings returns the settings of the last bound pass.
func (r *Renderer) Settings() settings.Donut { return r.settings }

// Frame returns the geometry of the last pass. It is zero while empty.
func (r *Renderer) Frame() Frame { return r.frame }

// Update clears the surface and redraws it from opts.
func (r *Renderer) Update(opts UpdateOptions) {
	r.tooltips.Clear()
	r.frame = Frame{}

	var dv *dataview.DataView
	if len(opts.DataViews) > 0 {
		dv = opts.DataViews[0]
	}
	name, value, err := dv.Measure()
	if err != nil {
		r.drawEmpty(opts.Viewport)
		return
	}

	r.settings = r.parser.Parse(dv)
	r.state = StateBound
	side := math.Max(0, math.Min(opts.Viewport.Width, opts.Viewport.Height))
	r.surface.Reset(side, side, r.settings.BackgroundColor)
	r.draw(name, value, side)
}

// EnumerateObjectInstances lists the formatting properties of objectName
// for the host's formatting pane.
func (r *Renderer) EnumerateObjectInstances(objectName string) []settings.ObjectInstance {
	return settings.EnumerateObjectInstances(r.settings, objectName)
}

func (r *Renderer) drawEmpty(vp Viewport) {
	r.state = StateEmpty
	r.surface.Reset(vp.Width, vp.Height, "")
	r.surface.DrawPlaceholder(Placeholder{
		Text:   PlaceholderText,
		Color:  PlaceholderColor,
		Font:   fonts.Spec{Family: r.settings.FontFamily, Size: placeholderFontSize},
		Width:  vp.Width,
		Height: vp.Height,
	})
	Logger().Debug("gauge: rendered placeholder", "width", vp.Width, "height", vp.Height)
}

func (r *Renderer) draw(name string, value, side float64) {
	s := r.settings
	center := Point{X: side / 2, Y: side / 2}
	percent := value * 100
	if value < 0 || value > 1 {
		Logger().Warn("gauge: value outside [0, 1] drawn unclamped", "value", value)
	}

	bg := NewArc(center.X, center.Y, center.X-s.InnerLineWidth-ringInset, 0, tau)
	r.surface.DrawPath(PathElement{
		Class:       BackgroundClass,
		Arc:         bg,
		Stroke:      s.InnerLineColor,
		StrokeWidth: s.InnerLineWidth,
	})

	sweep := PercentToSweep(percent)
	fg := NewArc(center.X, center.Y, center.X-s.OuterLineWidth+s.AmendmentSize-ringInset, StartAngle, StartAngle+sweep)
	label := FormatPercent(percent, s.ValueDecimalPlaces)
	datum := tooltip.Datum{TooltipInfo: []tooltip.Item{{DisplayName: name, Value: label}}}
	r.surface.DrawPath(PathElement{
		Class:       ForegroundClass,
		Arc:         fg,
		Stroke:      s.OuterLineColor,
		StrokeWidth: s.OuterLineWidth,
	})
	r.tooltips.AddTooltip(arcTarget{arc: fg, width: s.OuterLineWidth, datum: datum}, func(d tooltip.Datum) []tooltip.Item {
		return d.TooltipInfo
	})

	font := fonts.Spec{
		Family: s.FontFamily,
		Size:   LabelFontSize(s, side),
		Bold:   s.FontBold,
		Italic: s.FontItalic,
	}
	node := r.surface.DrawText(TextElement{ID: LabelID, Text: label, Font: font, Color: s.FontColor})
	node.MoveTo(CenterText(node.BBox(), center))

	r.frame = Frame{
		Side:       side,
		Center:     center,
		Value:      value,
		Percent:    percent,
		Sweep:      sweep,
		Background: bg,
		Foreground: fg,
		Label:      label,
		LabelFont:  font,
		Tooltip:    datum,
	}
	Logger().Debug("gauge: rendered", "label", label, "side", side, "font", font.CSS())
}

// LabelFontSize returns the configured size when custom sizes are enabled,
// and a size proportional to the gauge otherwise.
func LabelFontSize(s settings.Donut, side float64) float64 {
	if s.EnableCustomFontSizes {
		return s.FontSize
	}
	return math.Floor(side/12+0.5) * 2
}

// arcTarget hit tests the stroked foreground arc.
type arcTarget struct {
	arc   Arc
	width float64
	datum tooltip.Datum
}

func (t arcTarget) Contains(x, y float64) bool {
	return t.arc.Contains(Point{X: x, Y: y}, t.width)
}

func (t arcTarget) Datum() tooltip.Datum { return t.datum }
