// Package picker models the two colour-selection widgets of the studio. A
// Picker keeps a committed colour, which renders read, and a pending colour
// the user edits through swatches, hue, opacity and manual entry until it is
// saved.
package picker

import (
	"fmt"
	"math"
)

// Mount points of the two pickers created at startup.
const (
	DarkID  = "darkColor"
	LightID = "lightColor"
)

// DefaultSwatches is the preset palette shared by both pickers.
var DefaultSwatches = []Color{
	MustParse("#000000"),
	MustParse("#FFFFFF"),
	MustParse("#3b82f6"),
	MustParse("#10b981"),
	MustParse("#f59e0b"),
	MustParse("#ef4444"),
	MustParse("#8b5cf6"),
	MustParse("#ec4899"),
}

// SaveFunc receives the newly committed colour.
type SaveFunc func(Color)

// Option customises a Picker.
type Option func(*Picker)

// WithSwatches replaces the preset palette.
func WithSwatches(swatches []Color) Option {
	return func(p *Picker) {
		if len(swatches) > 0 {
			p.swatches = append([]Color(nil), swatches...)
		}
	}
}

// Picker is a single colour widget instance. It is owned by the UI loop and
// is not safe for concurrent use.
type Picker struct {
	name      string
	committed Color
	pending   Color
	swatches  []Color
	selected  int
	listeners []SaveFunc
}

// New creates a picker mounted at name with def as both committed and pending colour.
func New(name string, def Color, opts ...Option) *Picker {
	p := &Picker{
		name:      name,
		committed: def,
		pending:   def,
		swatches:  append([]Color(nil), DefaultSwatches...),
		selected:  -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.selected = p.indexOf(def)
	return p
}

// Name returns the mount point the picker was created for.
func (p *Picker) Name() string {
	return p.name
}

// Color returns the committed colour.
func (p *Picker) Color() Color {
	return p.committed
}

// Pending returns the colour currently being edited.
func (p *Picker) Pending() Color {
	return p.pending
}

// Dirty reports whether the pending colour differs from the committed one.
func (p *Picker) Dirty() bool {
	return p.pending != p.committed
}

// Swatches returns a copy of the preset palette.
func (p *Picker) Swatches() []Color {
	return append([]Color(nil), p.swatches...)
}

// Selected returns the index of the swatch matching the pending colour, or -1.
func (p *Picker) Selected() int {
	return p.selected
}

// OnSave subscribes fn to save events.
func (p *Picker) OnSave(fn SaveFunc) *Picker {
	if fn != nil {
		p.listeners = append(p.listeners, fn)
	}
	return p
}

// SelectSwatch makes swatch i the pending colour.
func (p *Picker) SelectSwatch(i int) error {
	if i < 0 || i >= len(p.swatches) {
		return fmt.Errorf("swatch %d out of range [0,%d)", i, len(p.swatches))
	}
	p.pending = p.swatches[i]
	p.selected = i
	return nil
}

// CycleSwatch moves the swatch selection by delta, wrapping around.
func (p *Picker) CycleSwatch(delta int) {
	n := len(p.swatches)
	if n == 0 {
		return
	}
	next := p.selected
	if next < 0 {
		next = 0
		if delta < 0 {
			next = n - 1
		}
	} else {
		next = ((next+delta)%n + n) % n
	}
	_ = p.SelectSwatch(next)
}

// ShiftHue rotates the pending colour's hue by deg degrees.
func (p *Picker) ShiftHue(deg float64) {
	p.setPending(p.pending.withHue(p.pending.hue() + deg))
}

// SetOpacity sets the pending alpha from a value in [0,1]; out of range values are clamped.
func (p *Picker) SetOpacity(a float64) {
	a = math.Max(0, math.Min(1, a))
	c := p.pending
	c.A = uint8(math.Round(a * 255))
	p.setPending(c)
}

// ShiftOpacity adjusts the pending alpha by delta.
func (p *Picker) ShiftOpacity(delta float64) {
	p.SetOpacity(float64(p.pending.A)/255 + delta)
}

// SetInput parses manual hex or rgba entry into the pending colour.
func (p *Picker) SetInput(text string) error {
	c, err := ParseColor(text)
	if err != nil {
		return err
	}
	p.setPending(c)
	return nil
}

// Save commits the pending colour and notifies save listeners.
func (p *Picker) Save() {
	p.committed = p.pending
	for _, fn := range p.listeners {
		fn(p.committed)
	}
}

// Cancel discards pending edits.
func (p *Picker) Cancel() {
	p.setPending(p.committed)
}

func (p *Picker) setPending(c Color) {
	p.pending = c
	p.selected = p.indexOf(c)
}

func (p *Picker) indexOf(c Color) int {
	for i, s := range p.swatches {
		if s == c {
			return i
		}
	}
	return -1
}
