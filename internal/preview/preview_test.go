package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/kpi-donut/internal/config"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
	"github.com/iburimskiy/kpi-donut/internal/settings"
)

func testHost(t *testing.T, opts Options) *host {
	t.Helper()
	cfg := &config.Config{
		Preview: config.PreviewConfig{Width: 1024, Height: 512},
		Donut:   settings.Defaults(),
	}
	return newHost(cfg, nil, opts)
}

func TestSetValueDirtiesOnLabelChange(t *testing.T) {
	h := testHost(t, Options{Name: "Sales", Value: 0.5})
	assert.Equal(t, "50.00%", h.label)
	assert.True(t, h.dirty)

	h.dirty = false
	h.setValue(0.500001)
	assert.False(t, h.dirty, "same label must not redraw")

	h.setValue(0.51)
	assert.True(t, h.dirty)
	assert.Equal(t, "51.00%", h.label)
}

func TestSetValueFollowsDecimals(t *testing.T) {
	h := testHost(t, Options{Value: 0.5})
	h.donut.ValueDecimalPlaces = 0
	h.label = ""
	h.setValue(0.504)
	assert.Equal(t, "50%", h.label)
}

func TestViewport(t *testing.T) {
	h := testHost(t, Options{})
	ox, oy := h.gaugeOrigin()
	assert.Equal(t, float64(config.ButtonX), ox)
	assert.Equal(t, float64(config.ButtonY+config.ButtonHeight+20), oy)

	vp := h.viewport()
	assert.Equal(t, gauge.Viewport{Width: 1024 - 2*ox, Height: 512 - oy - config.ButtonX}, vp)

	h.width, h.height = 10, 10
	assert.Equal(t, gauge.Viewport{}, h.viewport())
}

func TestLayoutDirtiesOnResize(t *testing.T) {
	h := testHost(t, Options{})
	h.dirty = false

	w, ht := h.Layout(1024, 512)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, ht)
	assert.False(t, h.dirty)

	h.Layout(800, 600)
	assert.True(t, h.dirty)
	assert.Equal(t, 800, h.width)
	assert.Equal(t, 600, h.height)
}

func TestToggleBound(t *testing.T) {
	h := testHost(t, Options{Name: "Sales", Value: 0.25})
	assert.Contains(t, h.status(), "Sales: 25.00%")

	h.dirty = false
	require.NoError(t, h.toggleBound())
	assert.False(t, h.bound)
	assert.True(t, h.dirty)
	assert.Equal(t, "No measure bound", h.status())

	empty := testHost(t, Options{Empty: true})
	assert.False(t, empty.bound)
}

func TestFinishedSignalBelongsToOneTrack(t *testing.T) {
	h := testHost(t, Options{})
	assert.False(t, h.trackFinished())

	first := h.watchFinished()
	first()
	first() // a second signal must not block

	h.watchFinished()
	assert.False(t, h.trackFinished(), "previous track's signal leaked into the next one")

	second := h.watchFinished()
	second()
	assert.True(t, h.trackFinished())
	assert.False(t, h.trackFinished())
}

func TestTipOverlay(t *testing.T) {
	h := testHost(t, Options{Name: "Sales", Value: 0.5})
	h.tooltips.Clear()
	assert.False(t, h.tip.visible)

	h.tip.Show(nil, 1, 2)
	assert.True(t, h.tip.visible)
	h.tip.Hide()
	assert.False(t, h.tip.visible)
	assert.Nil(t, h.tip.items)
}
