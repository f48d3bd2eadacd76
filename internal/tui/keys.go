package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Generate    key.Binding
	ToggleTheme key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	SavePNG     key.Binding
	CopyURL     key.Binding
	Quit        key.Binding

	PrevSwatch   key.Binding
	NextSwatch   key.Binding
	HueDown      key.Binding
	HueUp        key.Binding
	OpacityDown  key.Binding
	OpacityUp    key.Binding
	EditHex      key.Binding
	SaveColor    key.Binding
	CancelColor  key.Binding
	DismissAlert key.Binding
}

// Terminals report Ctrl+Enter as ctrl+j and Meta+Enter as alt+enter.
func defaultKeyMap() keyMap {
	return keyMap{
		Generate:    key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"), key.WithHelp("ctrl+enter", "generate now")),
		ToggleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		NextFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFocus:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		SavePNG:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save png")),
		CopyURL:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy data-url")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		PrevSwatch:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "swatch")),
		NextSwatch:   key.NewBinding(key.WithKeys("right", "l")),
		HueDown:      key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "hue")),
		HueUp:        key.NewBinding(key.WithKeys("]")),
		OpacityDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-/+", "opacity")),
		OpacityUp:    key.NewBinding(key.WithKeys("+", "=")),
		EditHex:      key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "hex/rgba")),
		SaveColor:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save colour")),
		CancelColor:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		DismissAlert: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	}
}

// helpKeys adapts the key map to bubbles/help for the focused area.
type helpKeys struct {
	keys   keyMap
	picker bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.picker {
		return []key.Binding{h.keys.PrevSwatch, h.keys.HueDown, h.keys.OpacityDown, h.keys.EditHex, h.keys.SaveColor, h.keys.CancelColor, h.keys.NextFocus}
	}
	return []key.Binding{h.keys.Generate, h.keys.NextFocus, h.keys.ToggleTheme, h.keys.SavePNG, h.keys.CopyURL, h.keys.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Generate, h.keys.NextFocus, h.keys.PrevFocus, h.keys.ToggleTheme},
		{h.keys.PrevSwatch, h.keys.HueDown, h.keys.OpacityDown, h.keys.EditHex, h.keys.SaveColor, h.keys.CancelColor},
		{h.keys.SavePNG, h.keys.CopyURL, h.keys.Quit},
	}
}
