package surface

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Rect    *svgRect  `xml:"rect"`
	Text    *svgText  `xml:"text"`
	Group   *svgGroup `xml:"g"`
}

type svgRect struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type svgGroup struct {
	ID     string     `xml:"id,attr,omitempty"`
	Class  string     `xml:"class,attr,omitempty"`
	Path   *svgPath   `xml:"path"`
	Text   *svgText   `xml:"text"`
	Groups []svgGroup `xml:"g"`
}

type svgPath struct {
	D           string `xml:"d,attr"`
	Stroke      string `xml:"stroke,attr"`
	LineCap     string `xml:"stroke-linecap,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
	Fill        string `xml:"fill,attr"`
}

type svgText struct {
	ID           string `xml:"id,attr,omitempty"`
	X            string `xml:"x,attr"`
	Y            string `xml:"y,attr"`
	TextLength   string `xml:"textLength,attr,omitempty"`
	LengthAdjust string `xml:"lengthAdjust,attr,omitempty"`
	Style        string `xml:"style,attr"`
	Content      string `xml:",chardata"`
}

// WriteSVG encodes the canvas as a standalone SVG document.
func (c *Canvas) WriteSVG(w io.Writer) error {
	doc := svgDoc{
		Xmlns:   svgNamespace,
		Width:   gauge.FormatNumber(c.width),
		Height:  gauge.FormatNumber(c.height),
		ViewBox: fmt.Sprintf("0 0 %s %s", gauge.FormatNumber(c.width), gauge.FormatNumber(c.height)),
	}
	if c.background != "" {
		doc.Rect = &svgRect{Width: doc.Width, Height: doc.Height, Fill: c.background}
	}

	if p := c.placeholder; p != nil {
		doc.Text = newSVGText("", p.Text, p.x, p.y, p.width, p.Font, p.family, p.Color)
	} else {
		container := &svgGroup{ID: gauge.ContainerID}
		for _, p := range c.paths {
			container.Groups = append(container.Groups, svgGroup{
				Class: p.Class,
				Path: &svgPath{
					D:           p.Arc.String(),
					Stroke:      p.Stroke,
					LineCap:     "round",
					StrokeWidth: gauge.FormatNumber(p.StrokeWidth),
					Fill:        "none",
				},
			})
		}
		for _, t := range c.texts {
			container.Groups = append(container.Groups, svgGroup{
				Text: newSVGText(t.ID, t.Text, t.x, t.y, t.box.W, t.Font, t.family, t.Color),
			})
		}
		doc.Group = container
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("surface: encode svg: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("surface: encode svg: %w", err)
	}
	return nil
}

// newSVGText positions a label the way it was measured. The measured
// family leads the font list and textLength pins the advance, so viewers
// without that face still keep the label centered horizontally.
func newSVGText(id, content string, x, y, width float64, spec fonts.Spec, family, color string) *svgText {
	t := &svgText{
		ID:      id,
		X:       gauge.FormatNumber(x),
		Y:       gauge.FormatNumber(y),
		Style:   textStyle(spec, family, color),
		Content: content,
	}
	if width > 0 {
		t.TextLength = gauge.FormatNumber(width)
		t.LengthAdjust = "spacingAndGlyphs"
	}
	return t
}

func textStyle(spec fonts.Spec, family, color string) string {
	if family != "" {
		spec.Family = family + ", " + spec.Family
	}
	return fmt.Sprintf("font: %s; fill: %s", spec.CSS(), color)
}
