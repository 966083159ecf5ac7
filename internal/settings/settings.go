// Package settings holds the style configuration of the donut gauge and the
// metadata the host formatting pane enumerates.
package settings

import (
	"strings"

	"github.com/iburimskiy/kpi-donut/internal/dataview"
)

// ObjectName is the single formatting object the gauge exposes.
const ObjectName = "donut"

// DefaultDecimalPlaces is used when the host hands over a non-numeric
// valueDecimalPlaces.
const DefaultDecimalPlaces = 2

// Property names as they appear in the host's object bags.
const (
	PropEnableCustomFontSizes = "enableCustomFontSizes"
	PropFontFamily            = "fontFamily"
	PropFontBold              = "fontBold"
	PropFontItalic            = "fontItalic"
	PropFontSize              = "fontSize"
	PropFontColor             = "fontColor"
	PropBackgroundColor       = "backgroundColor"
	PropOuterLineColor        = "outerLineColor"
	PropInnerLineColor        = "innerLineColor"
	PropValueDecimalPlaces    = "valueDecimalPlaces"
	PropOuterLineWidth        = "outerLineWidth"
	PropInnerLineWidth        = "innerLineWidth"
	PropAmendmentSize         = "amendmentSize"
)

// Donut is the style configuration of one gauge. It is a plain value: a
// renderer keeps a copy and replaces it wholesale on every update.
type Donut struct {
	EnableCustomFontSizes bool    `mapstructure:"enable_custom_font_sizes" yaml:"enableCustomFontSizes"`
	FontFamily            string  `mapstructure:"font_family"              yaml:"fontFamily"`
	FontBold              bool    `mapstructure:"font_bold"                yaml:"fontBold"`
	FontItalic            bool    `mapstructure:"font_italic"              yaml:"fontItalic"`
	FontSize              float64 `mapstructure:"font_size"                yaml:"fontSize"`
	FontColor             string  `mapstructure:"font_color"               yaml:"fontColor"`
	BackgroundColor       string  `mapstructure:"background_color"         yaml:"backgroundColor"`
	OuterLineColor        string  `mapstructure:"outer_line_color"         yaml:"outerLineColor"`
	InnerLineColor        string  `mapstructure:"inner_line_color"         yaml:"innerLineColor"`
	ValueDecimalPlaces    int     `mapstructure:"value_decimal_places"     yaml:"valueDecimalPlaces"`
	OuterLineWidth        float64 `mapstructure:"outer_line_width"         yaml:"outerLineWidth"`
	InnerLineWidth        float64 `mapstructure:"inner_line_width"         yaml:"innerLineWidth"`
	AmendmentSize         float64 `mapstructure:"amendment_size"           yaml:"amendmentSize"`
}

// Defaults returns the values the host applies when a property is absent.
func Defaults() Donut {
	return Donut{
		EnableCustomFontSizes: false,
		FontFamily:            "Segoe UI, wf_segoe-ui_normal, helvetica, arial, sans-serif",
		FontSize:              24,
		FontColor:             "#333333",
		BackgroundColor:       "#FFFFFF",
		OuterLineColor:        "#0070BA",
		InnerLineColor:        "#E6E6E6",
		ValueDecimalPlaces:    DefaultDecimalPlaces,
		OuterLineWidth:        12,
		InnerLineWidth:        6,
		AmendmentSize:         3,
	}
}

// Object renders d as a host property bag, the shape Parse reads back.
func (d Donut) Object() dataview.Object {
	return dataview.Object{
		PropEnableCustomFontSizes: d.EnableCustomFontSizes,
		PropFontFamily:            d.FontFamily,
		PropFontBold:              d.FontBold,
		PropFontItalic:            d.FontItalic,
		PropFontSize:              d.FontSize,
		PropFontColor:             d.FontColor,
		PropBackgroundColor:       d.BackgroundColor,
		PropOuterLineColor:        d.OuterLineColor,
		PropInnerLineColor:        d.InnerLineColor,
		PropValueDecimalPlaces:    d.ValueDecimalPlaces,
		PropOuterLineWidth:        d.OuterLineWidth,
		PropInnerLineWidth:        d.InnerLineWidth,
		PropAmendmentSize:         d.AmendmentSize,
	}
}

// Objects wraps Object under ObjectName.
func (d Donut) Objects() dataview.Objects {
	return dataview.Objects{ObjectName: d.Object()}
}

// Parser turns the objects of a data view into a Donut.
type Parser interface {
	Parse(dv *dataview.DataView) Donut
}

// ObjectParser reads the "donut" object and falls back to Defaults for
// every absent or mistyped property. Values are not range checked; the
// host clamps them before handing them over.
type ObjectParser struct {
	Defaults Donut
}

// NewParser returns an ObjectParser with the given host defaults.
func NewParser(defaults Donut) ObjectParser {
	return ObjectParser{Defaults: defaults}
}

// Parse implements Parser.
func (p ObjectParser) Parse(dv *dataview.DataView) Donut {
	d := p.Defaults
	if dv == nil {
		return d
	}
	objs := dv.Metadata.Objects

	d.EnableCustomFontSizes = boolValue(objs, PropEnableCustomFontSizes, d.EnableCustomFontSizes)
	d.FontFamily = stringValue(objs, PropFontFamily, d.FontFamily)
	d.FontBold = boolValue(objs, PropFontBold, d.FontBold)
	d.FontItalic = boolValue(objs, PropFontItalic, d.FontItalic)
	d.FontSize = numberValue(objs, PropFontSize, d.FontSize)
	d.FontColor = colorValue(objs, PropFontColor, d.FontColor)
	d.BackgroundColor = colorValue(objs, PropBackgroundColor, d.BackgroundColor)
	d.OuterLineColor = colorValue(objs, PropOuterLineColor, d.OuterLineColor)
	d.InnerLineColor = colorValue(objs, PropInnerLineColor, d.InnerLineColor)
	d.OuterLineWidth = numberValue(objs, PropOuterLineWidth, d.OuterLineWidth)
	d.InnerLineWidth = numberValue(objs, PropInnerLineWidth, d.InnerLineWidth)
	d.AmendmentSize = numberValue(objs, PropAmendmentSize, d.AmendmentSize)

	if v, ok := objs.Property(ObjectName, PropValueDecimalPlaces); ok {
		if n, ok := dataview.ToFloat(v); ok {
			d.ValueDecimalPlaces = int(n)
		} else {
			d.ValueDecimalPlaces = DefaultDecimalPlaces
		}
	}
	return d
}

func boolValue(objs dataview.Objects, prop string, def bool) bool {
	v, ok := objs.Property(ObjectName, prop)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func stringValue(objs dataview.Objects, prop, def string) string {
	v, ok := objs.Property(ObjectName, prop)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func numberValue(objs dataview.Objects, prop string, def float64) float64 {
	v, ok := objs.Property(ObjectName, prop)
	if !ok {
		return def
	}
	n, ok := dataview.ToFloat(v)
	if !ok {
		return def
	}
	return n
}

// colorValue accepts a plain color string or the host fill shape
// {solid: {color: "#rrggbb"}}.
func colorValue(objs dataview.Objects, prop, def string) string {
	v, ok := objs.Property(ObjectName, prop)
	if !ok {
		return def
	}
	switch c := v.(type) {
	case string:
		if c == "" {
			return def
		}
		return c
	case map[string]any:
		solid, ok := c["solid"].(map[string]any)
		if !ok {
			return def
		}
		if s, ok := solid["color"].(string); ok && s != "" {
			return s
		}
	}
	return def
}
