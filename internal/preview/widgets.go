package preview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/kpi-donut/internal/config"
	"github.com/iburimskiy/kpi-donut/internal/tooltip"
)

type button struct {
	label   string
	x       int
	onClick func() error

	hovered bool
	pressed bool
}

// update tracks hover and press state and fires onClick on release.
func (b *button) update(mouseX, mouseY int) error {
	b.hovered = mouseX >= b.x && mouseX <= b.x+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		clicked := b.pressed && b.hovered
		b.pressed = false
		if clicked {
			return b.onClick()
		}
	}
	return nil
}

func (b *button) draw(screen *ebiten.Image) {
	var bg color.Color
	switch {
	case b.pressed:
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case b.hovered:
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}

	x, y := float32(b.x), float32(config.ButtonY)
	vector.DrawFilledRect(screen, x, y, config.ButtonWidth, config.ButtonHeight, bg, false)
	vector.StrokeRect(screen, x, y, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	textWidth := len(b.label) * 6 // debug font glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, b.label, b.x+(config.ButtonWidth-textWidth)/2, config.ButtonY+(config.ButtonHeight-16)/2)
}

// tipOverlay implements tooltip.Service by drawing a box next to the
// pointer. Coordinates are relative to the gauge area.
type tipOverlay struct {
	items   []tooltip.Item
	x, y    float64
	visible bool
}

func (t *tipOverlay) Show(items []tooltip.Item, x, y float64) {
	t.items = items
	t.x, t.y = x, y
	t.visible = true
}

func (t *tipOverlay) Hide() {
	t.visible = false
	t.items = nil
}

func (t *tipOverlay) draw(screen *ebiten.Image, ox, oy float64, screenWidth int) {
	if !t.visible || len(t.items) == 0 {
		return
	}

	lines := make([]string, len(t.items))
	widest := 0
	for i, it := range t.items {
		lines[i] = it.DisplayName + ": " + it.Value
		widest = max(widest, len(lines[i]))
	}

	width := widest*6 + 10
	height := len(lines)*16 + 4
	x := int(t.x+ox) + 12
	y := int(t.y+oy) - height - 4
	if x+width > screenWidth {
		x = screenWidth - width
	}
	x = max(x, 0)
	y = max(y, 0)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+5, y+2+i*16)
	}
}
