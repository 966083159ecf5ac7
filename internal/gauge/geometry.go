package gauge

import (
	"math"
	"strconv"
	"strings"
)

const (
	tau        = 2 * math.Pi
	epsilon    = 1e-6
	tauEpsilon = tau - epsilon

	// StartAngle puts 0% at 12 o'clock. Angles grow clockwise on screen
	// because y points down.
	StartAngle = -math.Pi / 2
)

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// PercentToSweep converts a percentage into an arc extent in radians.
// The input is not clamped: 150% sweeps 3π.
func PercentToSweep(percent float64) float64 {
	return percent * tau / 100
}

// Arc is a circular arc from Start to End, in radians.
type Arc struct {
	CX, CY float64
	Radius float64
	Start  float64
	End    float64
}

// NewArc builds an Arc. A negative radius is clamped to 0; NaN coordinates
// and angles count as 0.
func NewArc(cx, cy, r, a0, a1 float64) Arc {
	return Arc{
		CX:     finite(cx),
		CY:     finite(cy),
		Radius: math.Max(0, finite(r)),
		Start:  finite(a0),
		End:    finite(a1),
	}
}

// ComputeArc returns the SVG path data of the arc around (cx, cy).
func ComputeArc(cx, cy, r, a0, a1 float64) string {
	return NewArc(cx, cy, r, a0, a1).String()
}

// Sweep returns the drawn extent. Negative extents wrap into [0, 2π).
// Extents beyond a full turn are kept as is; Full reports them.
func (a Arc) Sweep() float64 {
	da := a.End - a.Start
	if da < 0 {
		da = math.Mod(da, tau) + tau
	}
	return da
}

// Full reports whether the arc draws a closed ring.
func (a Arc) Full() bool {
	return a.Radius > 0 && a.Sweep() > tauEpsilon
}

// Empty reports whether the arc draws nothing.
func (a Arc) Empty() bool {
	return a.Radius == 0 || a.Sweep() <= epsilon
}

// StartPoint returns the point at Start.
func (a Arc) StartPoint() Point {
	return a.pointAt(a.Start)
}

// EndPoint returns the point at End.
func (a Arc) EndPoint() Point {
	return a.pointAt(a.End)
}

func (a Arc) pointAt(angle float64) Point {
	return Point{
		X: a.CX + a.Radius*math.Cos(angle),
		Y: a.CY + a.Radius*math.Sin(angle),
	}
}

// String encodes the arc as SVG path data. A full turn is split into two
// half circles since a single SVG arc cannot close on itself.
func (a Arc) String() string {
	var b strings.Builder
	p0 := a.StartPoint()
	b.WriteString("M")
	b.WriteString(FormatNumber(p0.X))
	b.WriteString(",")
	b.WriteString(FormatNumber(p0.Y))

	if a.Radius == 0 {
		return b.String()
	}

	r := FormatNumber(a.Radius)
	da := a.Sweep()
	switch {
	case da > tauEpsilon:
		mid := Point{X: 2*a.CX - p0.X, Y: 2*a.CY - p0.Y}
		writeArcTo(&b, r, true, mid)
		writeArcTo(&b, r, true, p0)
	case da > epsilon:
		writeArcTo(&b, r, da >= math.Pi, a.EndPoint())
	}
	return b.String()
}

func writeArcTo(b *strings.Builder, r string, large bool, p Point) {
	flag := "0"
	if large {
		flag = "1"
	}
	b.WriteString("A")
	b.WriteString(r)
	b.WriteString(",")
	b.WriteString(r)
	b.WriteString(",0,")
	b.WriteString(flag)
	b.WriteString(",1,")
	b.WriteString(FormatNumber(p.X))
	b.WriteString(",")
	b.WriteString(FormatNumber(p.Y))
}

// Contains reports whether p lies on the arc stroked with width.
func (a Arc) Contains(p Point, width float64) bool {
	if a.Empty() {
		return false
	}
	d := math.Hypot(p.X-a.CX, p.Y-a.CY)
	if math.Abs(d-a.Radius) > width/2 {
		return false
	}
	if a.Full() {
		return true
	}
	rel := math.Mod(math.Atan2(p.Y-a.CY, p.X-a.CX)-a.Start, tau)
	if rel < 0 {
		rel += tau
	}
	return rel <= a.Sweep()
}

// FormatNumber formats v with at most three decimals.
func FormatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
