// Package fonts resolves CSS-style font specs to gogpu/gg text faces and
// measures labels with them.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// GoFamily is the family name of the embedded fallback fonts.
const GoFamily = "Go"

// ErrEmptyFamily is returned when registering a font without a family name.
var ErrEmptyFamily = errors.New("fonts: empty family name")

// Spec describes the font of a label.
type Spec struct {
	// Family is a CSS family list, e.g. "Segoe UI, helvetica, sans-serif".
	Family string
	// Size is in pixels.
	Size   float64
	Bold   bool
	Italic bool
}

// Weight returns the CSS font-weight keyword.
func (s Spec) Weight() string {
	if s.Bold {
		return "bold"
	}
	return "normal"
}

// Style returns the CSS font-style keyword.
func (s Spec) Style() string {
	if s.Italic {
		return "italic"
	}
	return "normal"
}

// CSS returns the font shorthand "<style> <weight> <size>px <family>".
func (s Spec) CSS() string {
	return fmt.Sprintf("%s %s %spx %s", s.Style(), s.Weight(),
		strconv.FormatFloat(s.Size, 'f', -1, 64), s.Family)
}

// BBox is a text bounding box relative to the baseline origin of the
// text: Y is negative for the part above the baseline.
type BBox struct {
	X, Y, W, H float64
}

type variant struct {
	bold, italic bool
}

// Library caches parsed font sources. The Go font family covers the four
// weight/style variants of every unregistered family.
type Library struct {
	mu       sync.Mutex
	families map[string]*text.FontSource
	names    map[string]string // normalized -> registered name
	fallback map[variant]*text.FontSource
}

// NewLibrary returns a Library backed by the embedded Go fonts.
func NewLibrary() *Library {
	return &Library{
		families: make(map[string]*text.FontSource),
		names:    make(map[string]string),
		fallback: make(map[variant]*text.FontSource),
	}
}

// Register makes data available under family. Lookups are case
// insensitive. The same source serves all variants of the family.
func (l *Library) Register(family string, data []byte) error {
	key := normalizeFamily(family)
	if key == "" {
		return ErrEmptyFamily
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("fonts: parse %q: %w", family, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.families[key] = src
	l.names[key] = strings.Trim(strings.TrimSpace(family), `"'`)
	return nil
}

// RegisterFile reads a TTF/OTF file and registers it under family.
func (l *Library) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fonts: read %s: %w", path, err)
	}
	return l.Register(family, data)
}

// Face resolves spec to a face. The first registered family of the CSS
// list wins; otherwise the matching Go font variant is used.
func (l *Library) Face(spec Spec) (text.Face, error) {
	src, err := l.source(spec)
	if err != nil {
		return nil, err
	}
	return src.Face(spec.Size), nil
}

// Measure returns the bounding box of label drawn with spec at the origin.
// Width is the advance of the text; the height spans ascent and descent.
func (l *Library) Measure(label string, spec Spec) (BBox, error) {
	face, err := l.Face(spec)
	if err != nil {
		return BBox{}, err
	}
	m := face.Metrics()
	box := BBox{Y: -m.Ascent, H: m.Ascent + m.Descent}
	if label != "" {
		box.W = face.Advance(label)
	}
	return box, nil
}

// Resolve returns the name of the family Face and Measure use for spec:
// the first registered family of the CSS list, or GoFamily.
func (l *Library) Resolve(spec Spec) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, fam := range strings.Split(spec.Family, ",") {
		if name, ok := l.names[normalizeFamily(fam)]; ok {
			return name
		}
	}
	return GoFamily
}

func (l *Library) source(spec Spec) (*text.FontSource, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, fam := range strings.Split(spec.Family, ",") {
		if src, ok := l.families[normalizeFamily(fam)]; ok {
			return src, nil
		}
	}

	v := variant{bold: spec.Bold, italic: spec.Italic}
	if src, ok := l.fallback[v]; ok {
		return src, nil
	}
	src, err := text.NewFontSource(goFont(v))
	if err != nil {
		return nil, fmt.Errorf("fonts: parse go font: %w", err)
	}
	l.fallback[v] = src
	return src, nil
}

func goFont(v variant) []byte {
	switch {
	case v.bold && v.italic:
		return gobolditalic.TTF
	case v.bold:
		return gobold.TTF
	case v.italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

func normalizeFamily(family string) string {
	f := strings.TrimSpace(family)
	f = strings.Trim(f, `"'`)
	return strings.ToLower(strings.TrimSpace(f))
}
