// Package theme decides between light and dark mode from a stored preference
// and the platform hint, and flips that choice on request.
package theme

import (
	"github.com/alexisbeaulieu97/qrforge/internal/prefs"
)

// StorageKey is the preference key holding "light" or "dark".
const StorageKey = "theme"

// Preference is the persisted user choice.
type Preference string

const (
	PreferenceUnset Preference = ""
	PreferenceLight Preference = "light"
	PreferenceDark  Preference = "dark"
)

// Mode is the applied visual mode.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
)

func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// Icon identifies one half of the toggle's icon pair.
type Icon string

const (
	IconSun  Icon = "sun-icon"
	IconMoon Icon = "moon-icon"
)

// Document is the surface a mode is applied to.
type Document interface {
	SetDark(dark bool)
	IsDark() bool
	SetIconHidden(icon Icon, hidden bool)
}

// HintFunc reports whether the platform prefers a dark scheme.
type HintFunc func() bool

// Controller applies and toggles the theme on a Document.
type Controller struct {
	store prefs.Store
	hint  HintFunc
	doc   Document
}

// NewController wires a controller; a nil hint means "platform prefers light".
func NewController(store prefs.Store, hint HintFunc, doc Document) *Controller {
	if hint == nil {
		hint = func() bool { return false }
	}
	return &Controller{store: store, hint: hint, doc: doc}
}

// Preference returns the stored preference; unknown values read as unset.
func (c *Controller) Preference() Preference {
	v, ok := c.store.Get(StorageKey)
	if !ok {
		return PreferenceUnset
	}
	switch p := Preference(v); p {
	case PreferenceLight, PreferenceDark:
		return p
	}
	return PreferenceUnset
}

// Resolve computes the mode without touching the document.
func (c *Controller) Resolve() Mode {
	pref := c.Preference()
	if pref == PreferenceDark || (pref == PreferenceUnset && c.hint()) {
		return ModeDark
	}
	return ModeLight
}

// ApplyPreference applies the resolved mode to the document. In dark mode the
// sun icon is shown (it switches to light) and the moon icon hidden; light mode
// is the reverse.
func (c *Controller) ApplyPreference() Mode {
	return c.apply(c.Resolve())
}

func (c *Controller) apply(mode Mode) Mode {
	dark := mode == ModeDark
	c.doc.SetDark(dark)
	c.doc.SetIconHidden(IconMoon, dark)
	c.doc.SetIconHidden(IconSun, !dark)
	return mode
}

// Toggle flips the mode currently applied to the document and persists the
// explicit choice. If persisting fails the flipped mode stays applied and the
// store error is returned.
func (c *Controller) Toggle() (Mode, error) {
	next := PreferenceDark
	if c.doc.IsDark() {
		next = PreferenceLight
	}

	if err := c.store.Set(StorageKey, string(next)); err != nil {
		if next == PreferenceDark {
			return c.apply(ModeDark), err
		}
		return c.apply(ModeLight), err
	}

	return c.ApplyPreference(), nil
}
