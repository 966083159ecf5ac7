package tooltip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type boxTarget struct {
	x0, y0, x1, y1 float64
	datum          Datum
}

func (b boxTarget) Contains(x, y float64) bool {
	return x >= b.x0 && x <= b.x1 && y >= b.y0 && y <= b.y1
}

func (b boxTarget) Datum() Datum { return b.datum }

type recorder struct {
	shown  [][]Item
	hidden int
}

func (r *recorder) Show(items []Item, _, _ float64) { r.shown = append(r.shown, items) }
func (r *recorder) Hide()                           { r.hidden++ }

func passthrough(d Datum) []Item { return d.TooltipInfo }

func TestHandlePointer(t *testing.T) {
	rec := &recorder{}
	w := NewWrapper(rec)
	items := []Item{{DisplayName: "Completion", Value: "45.67%"}}
	w.AddTooltip(boxTarget{0, 0, 10, 10, Datum{TooltipInfo: items}}, passthrough)

	assert.True(t, w.HandlePointer(5, 5))
	assert.Equal(t, [][]Item{items}, rec.shown)

	assert.False(t, w.HandlePointer(50, 50))
	assert.Equal(t, 1, rec.hidden)

	// Already hidden: no second Hide call.
	assert.False(t, w.HandlePointer(60, 60))
	assert.Equal(t, 1, rec.hidden)
}

func TestTopmostWins(t *testing.T) {
	w := NewWrapper(nil)
	w.AddTooltip(boxTarget{0, 0, 10, 10, Datum{TooltipInfo: []Item{{Value: "below"}}}}, passthrough)
	w.AddTooltip(boxTarget{5, 5, 10, 10, Datum{TooltipInfo: []Item{{Value: "above"}}}}, passthrough)

	items, ok := w.Lookup(7, 7)
	assert.True(t, ok)
	assert.Equal(t, "above", items[0].Value)

	items, ok = w.Lookup(2, 2)
	assert.True(t, ok)
	assert.Equal(t, "below", items[0].Value)
}

func TestClear(t *testing.T) {
	rec := &recorder{}
	w := NewWrapper(rec)
	w.AddTooltip(boxTarget{0, 0, 10, 10, Datum{TooltipInfo: []Item{{Value: "x"}}}}, passthrough)
	w.AddTooltip(nil, passthrough)
	assert.Equal(t, 1, w.Len())

	w.HandlePointer(1, 1)
	w.Clear()
	assert.Zero(t, w.Len())
	assert.Equal(t, 1, rec.hidden)

	_, ok := w.Lookup(1, 1)
	assert.False(t, ok)
}
