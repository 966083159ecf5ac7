package gauge

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentToSweep(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		sweep := PercentToSweep(v * 100)
		assert.GreaterOrEqual(t, sweep, 0.0)
		assert.LessOrEqual(t, sweep, tau+1e-12)

		arc := NewArc(100, 100, 50, StartAngle, StartAngle+sweep)
		assert.InDelta(t, -math.Pi/2+sweep, arc.End, 1e-12)
	}

	assert.Equal(t, 0.0, PercentToSweep(0))
	assert.InDelta(t, tau, PercentToSweep(100), 1e-12)
	assert.InDelta(t, 3*math.Pi, PercentToSweep(150), 1e-12)
	assert.Less(t, PercentToSweep(-25), 0.0)
}

func TestComputeArc(t *testing.T) {
	tests := []struct {
		name   string
		a0, a1 float64
		want   string
	}{
		{"zero sweep", StartAngle, StartAngle, "M100,50"},
		{"quarter", StartAngle, 0, "M100,50A50,50,0,0,1,150,100"},
		{"half", StartAngle, math.Pi / 2, "M100,50A50,50,0,1,1,100,150"},
		{"full", StartAngle, StartAngle + tau, "M100,50A50,50,0,1,1,100,150A50,50,0,1,1,100,50"},
		{"beyond full", StartAngle, StartAngle + 3*math.Pi, "M100,50A50,50,0,1,1,100,150A50,50,0,1,1,100,50"},
		{"background ring", 0, tau, "M150,100A50,50,0,1,1,50,100A50,50,0,1,1,150,100"},
		{"negative wraps", StartAngle, StartAngle - math.Pi/2, "M100,50A50,50,0,1,1,50,100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeArc(100, 100, 50, tt.a0, tt.a1))
		})
	}
}

func TestComputeArcDegenerate(t *testing.T) {
	assert.Equal(t, "M10,10", ComputeArc(10, 10, 0, 0, math.Pi))
	assert.Equal(t, "M10,10", ComputeArc(10, 10, -5, 0, math.Pi))

	arc := NewArc(math.NaN(), 10, 5, math.NaN(), math.NaN())
	assert.Equal(t, 0.0, arc.CX)
	assert.Equal(t, 0.0, arc.Start)
	assert.True(t, arc.Empty())
	assert.False(t, strings.Contains(arc.String(), "A"))
}

func TestArcZeroValueDegenerates(t *testing.T) {
	arc := NewArc(100, 100, 50, StartAngle, StartAngle+PercentToSweep(0))
	assert.Equal(t, arc.Start, arc.End)
	assert.True(t, arc.Empty())
	assert.False(t, arc.Full())
	assert.Equal(t, arc.StartPoint(), arc.EndPoint())
}

func TestArcFull(t *testing.T) {
	full := NewArc(100, 100, 50, StartAngle, StartAngle+PercentToSweep(100))
	assert.True(t, full.Full())
	assert.InDelta(t, tau, full.Sweep(), 1e-12)

	over := NewArc(100, 100, 50, StartAngle, StartAngle+PercentToSweep(150))
	assert.True(t, over.Full())
	assert.InDelta(t, 3*math.Pi, over.Sweep(), 1e-12)
}

func TestArcContains(t *testing.T) {
	quarter := NewArc(100, 100, 50, StartAngle, 0)

	assert.True(t, quarter.Contains(Point{X: 100 + 50*math.Cos(-math.Pi/4), Y: 100 + 50*math.Sin(-math.Pi/4)}, 10))
	assert.True(t, quarter.Contains(Point{X: 100, Y: 46}, 10))
	assert.False(t, quarter.Contains(Point{X: 100, Y: 40}, 10), "outside stroke")
	assert.False(t, quarter.Contains(Point{X: 50, Y: 100}, 10), "outside sweep")
	assert.False(t, quarter.Contains(Point{X: 100, Y: 100}, 10), "center")

	full := NewArc(100, 100, 50, 0, tau)
	assert.True(t, full.Contains(Point{X: 50, Y: 100}, 10))

	empty := NewArc(100, 100, 50, StartAngle, StartAngle)
	assert.False(t, empty.Contains(Point{X: 100, Y: 50}, 10))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(-0.0001))
	assert.Equal(t, "1.235", FormatNumber(1.23456))
	assert.Equal(t, "-3.5", FormatNumber(-3.5))
	assert.Equal(t, "6", FormatNumber(6.123233995736766e-15+6))
}
