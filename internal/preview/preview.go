// Package preview hosts the gauge in an ebiten window: it delivers update
// events, rasterizes the surface, tracks the pointer for tooltips and can
// bind the measure to the level of a playing audio file.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/kpi-donut/internal/config"
	"github.com/iburimskiy/kpi-donut/internal/dataview"
	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
	"github.com/iburimskiy/kpi-donut/internal/settings"
	"github.com/iburimskiy/kpi-donut/internal/source"
	"github.com/iburimskiy/kpi-donut/internal/surface"
	"github.com/iburimskiy/kpi-donut/internal/tooltip"
)

// Options seeds the preview.
type Options struct {
	Name  string
	Value float64
	// Audio, if set, is played and its level drives the measure.
	Audio string
	// Empty starts without a bound measure.
	Empty bool
}

type host struct {
	cfg *config.Config

	canvas   *surface.Canvas
	renderer *gauge.Renderer
	tooltips *tooltip.Wrapper
	tip      *tipOverlay
	image    *ebiten.Image
	dirty    bool

	name  string
	value float64
	bound bool
	donut settings.Donut
	label string

	// audio
	streamer  beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	tap       *source.LevelTap
	duration  time.Duration
	started   time.Time
	finished  chan struct{}
	paused    bool
	initDone  bool
	audioName string

	width, height int
	buttons       []*button
	lastErr       error
}

// Run opens the preview window and blocks until it is closed.
func Run(cfg *config.Config, lib *fonts.Library, opts Options) error {
	h := newHost(cfg, lib, opts)
	if opts.Audio != "" {
		if err := h.loadAndPlay(opts.Audio); err != nil {
			return err
		}
	}
	defer h.stopAudio()

	ebiten.SetWindowSize(cfg.Preview.Width, cfg.Preview.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("KPI Donut - Up/Down: value, Space: pause audio, Esc/Q: quit")

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func newHost(cfg *config.Config, lib *fonts.Library, opts Options) *host {
	h := &host{
		cfg:      cfg,
		canvas:   surface.New(lib),
		tip:      &tipOverlay{},
		name:     opts.Name,
		value:    opts.Value,
		bound:    !opts.Empty,
		donut:    cfg.Donut,
		finished: make(chan struct{}, 1),
		width:    cfg.Preview.Width,
		height:   cfg.Preview.Height,
		dirty:    true,
	}
	h.tooltips = tooltip.NewWrapper(h.tip)
	h.renderer = gauge.New(h.canvas, h.tooltips)
	h.setValue(opts.Value)
	h.buttons = []*button{
		{label: "Open Style", x: config.ButtonX, onClick: h.openStyleDialog},
		{label: "Open Audio", x: config.ButtonX + config.ButtonWidth + config.ButtonGap, onClick: h.openAudioDialog},
		{label: "Bind/Unbind", x: config.ButtonX + 2*(config.ButtonWidth+config.ButtonGap), onClick: h.toggleBound},
	}
	return h
}

// gaugeOrigin is the top-left corner of the gauge area.
func (h *host) gaugeOrigin() (float64, float64) {
	return config.ButtonX, config.ButtonY + config.ButtonHeight + 20
}

func (h *host) viewport() gauge.Viewport {
	ox, oy := h.gaugeOrigin()
	return gauge.Viewport{
		Width:  math.Max(0, float64(h.width)-2*ox),
		Height: math.Max(0, float64(h.height)-oy-config.ButtonX),
	}
}

func (h *host) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	for _, b := range h.buttons {
		if err := b.update(mouseX, mouseY); err != nil {
			h.lastErr = err
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		h.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && h.tap == nil:
		h.setValue(h.value + config.ValueStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && h.tap == nil:
		h.setValue(h.value - config.ValueStep)
	}

	if h.trackFinished() {
		h.stopAudio()
	}
	if h.tap != nil && !h.paused {
		h.setValue(h.tap.Level(config.LevelWindow))
	}

	if h.dirty {
		h.render()
	}

	ox, oy := h.gaugeOrigin()
	h.tooltips.HandlePointer(float64(mouseX)-ox, float64(mouseY)-oy)
	return nil
}

// setValue marks the gauge dirty only when the visible label changes.
func (h *host) setValue(v float64) {
	h.value = math.Round(v*1e6) / 1e6
	label := gauge.FormatPercent(h.value*100, h.donut.ValueDecimalPlaces)
	if label != h.label {
		h.label = label
		h.dirty = true
	}
}

// render delivers one update event to the renderer and rasterizes the
// result.
func (h *host) render() {
	h.dirty = false

	var views []*dataview.DataView
	if h.bound {
		views = []*dataview.DataView{dataview.NewSingle(h.name, h.value, h.donut.Objects())}
	}
	h.renderer.Update(gauge.UpdateOptions{DataViews: views, Viewport: h.viewport()})

	if h.image != nil {
		h.image.Deallocate()
		h.image = nil
	}
	img, err := h.canvas.Rasterize()
	if err != nil {
		if !errors.Is(err, surface.ErrEmptyCanvas) {
			h.lastErr = err
		}
		return
	}
	h.image = ebiten.NewImageFromImage(img)
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 36, A: 255})

	ox, oy := h.gaugeOrigin()
	if h.image != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(ox, oy)
		screen.DrawImage(h.image, op)
	}

	for _, b := range h.buttons {
		b.draw(screen)
	}
	h.tip.draw(screen, ox, oy, h.width)

	ebitenutil.DebugPrintAt(screen, h.status(), 12, 12)
}

func (h *host) status() string {
	var status string
	switch {
	case !h.bound:
		status = "No measure bound"
	case h.tap != nil && h.paused:
		status = fmt.Sprintf("Paused %s - Space to resume", h.audioName)
	case h.tap != nil:
		elapsed := min(time.Since(h.started), h.duration)
		status = fmt.Sprintf("Level of %s %s/%s", h.audioName,
			source.FormatDuration(elapsed), source.FormatDuration(h.duration))
	default:
		status = fmt.Sprintf("%s: %s - Up/Down to change", h.name, h.label)
	}
	if h.lastErr != nil {
		status += " | Error: " + h.lastErr.Error()
	}
	return status
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.dirty = true
	}
	return outsideWidth, outsideHeight
}

func (h *host) toggleBound() error {
	h.bound = !h.bound
	h.dirty = true
	return nil
}

func (h *host) openStyleDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Style File"),
		zenity.FileFilters{{
			Name:     "Style",
			Patterns: []string{"*.yaml", "*.yml", "*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	d, err := config.LoadDonut(filename, h.donut)
	if err != nil {
		return err
	}
	h.donut = d
	h.label = ""
	h.setValue(h.value)
	gauge.Logger().Info("preview: style loaded", "path", filename)
	return nil
}

func (h *host) openAudioDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: source.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return h.loadAndPlay(filename)
}
