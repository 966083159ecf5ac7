// Package tooltip binds hover records to drawn elements and forwards them to
// a host tooltip service.
package tooltip

// Item is one row of a tooltip.
type Item struct {
	DisplayName string `yaml:"displayName" json:"displayName"`
	Value       string `yaml:"value" json:"value"`
}

// Datum is the data bound to an element.
type Datum struct {
	TooltipInfo []Item
}

// Target is an element that can be hovered.
type Target interface {
	// Contains reports whether the pointer at (x, y) is over the element.
	Contains(x, y float64) bool
	// Datum returns the data bound to the element.
	Datum() Datum
}

// InfoFunc extracts the tooltip rows from the datum of a hovered element.
type InfoFunc func(Datum) []Item

// Service is the host side that actually displays tooltips.
type Service interface {
	Show(items []Item, x, y float64)
	Hide()
}

type binding struct {
	target Target
	info   InfoFunc
}

// Wrapper tracks the pointer over bound targets and drives a Service.
// It is not safe for concurrent use; hosts call it from their event loop.
type Wrapper struct {
	service  Service
	bindings []binding
	visible  bool
}

// NewWrapper returns a Wrapper driving s. A nil s discards tooltips.
func NewWrapper(s Service) *Wrapper {
	return &Wrapper{service: s}
}

// AddTooltip binds info to target.
func (w *Wrapper) AddTooltip(target Target, info InfoFunc) {
	if target == nil || info == nil {
		return
	}
	w.bindings = append(w.bindings, binding{target: target, info: info})
}

// Clear drops every binding and hides a visible tooltip.
func (w *Wrapper) Clear() {
	w.bindings = w.bindings[:0]
	w.hide()
}

// Len returns the number of bound targets.
func (w *Wrapper) Len() int {
	return len(w.bindings)
}

// Lookup returns the rows for the topmost target under (x, y).
func (w *Wrapper) Lookup(x, y float64) ([]Item, bool) {
	for i := len(w.bindings) - 1; i >= 0; i-- {
		b := w.bindings[i]
		if b.target.Contains(x, y) {
			return b.info(b.target.Datum()), true
		}
	}
	return nil, false
}

// HandlePointer shows the tooltip of the target under (x, y), or hides the
// current one when the pointer left every target. It reports whether a
// tooltip is shown.
func (w *Wrapper) HandlePointer(x, y float64) bool {
	items, ok := w.Lookup(x, y)
	if !ok || len(items) == 0 {
		w.hide()
		return false
	}
	if w.service != nil {
		w.service.Show(items, x, y)
	}
	w.visible = true
	return true
}

func (w *Wrapper) hide() {
	if !w.visible {
		return
	}
	w.visible = false
	if w.service != nil {
		w.service.Hide()
	}
}
