package gauge

import (
	"github.com/iburimskiy/kpi-donut/internal/fonts"
)

// Element classes and ids, shared by every surface encoding.
const (
	ContainerID     = "arc-container"
	BackgroundClass = "bg-circle"
	ForegroundClass = "fore-circle"
	LabelID         = "percent"
)

// PathElement is a stroked, unfilled arc.
type PathElement struct {
	Class       string
	Arc         Arc
	Stroke      string
	StrokeWidth float64
}

// TextElement is a label drawn with its anchor at the origin.
type TextElement struct {
	ID    string
	Text  string
	Font  fonts.Spec
	Color string
}

// Placeholder is the message shown while no measure is bound.
type Placeholder struct {
	Text          string
	Color         string
	Font          fonts.Spec
	Width, Height float64
}

// TextNode is a drawn label that can be measured and moved.
type TextNode interface {
	// BBox returns the rendered bounding box at the current anchor.
	BBox() Rect
	// MoveTo places the text anchor (left end of the baseline) at (x, y).
	MoveTo(x, y float64)
}

// Surface is the drawing container a Renderer owns. Reset discards
// everything drawn before.
type Surface interface {
	Reset(width, height float64, background string)
	DrawPath(p PathElement)
	DrawText(t TextElement) TextNode
	DrawPlaceholder(p Placeholder)
}
