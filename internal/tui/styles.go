package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	error   lipgloss.Color
	success lipgloss.Color
	errorBg lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("#6d28d9"),
		text:    lipgloss.Color("#1f2937"),
		muted:   lipgloss.Color("#6b7280"),
		border:  lipgloss.Color("#d1d5db"),
		error:   lipgloss.Color("#b91c1c"),
		success: lipgloss.Color("#047857"),
		errorBg: lipgloss.Color("#fee2e2"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("#a78bfa"),
		text:    lipgloss.Color("#e5e7eb"),
		muted:   lipgloss.Color("#9ca3af"),
		border:  lipgloss.Color("#374151"),
		error:   lipgloss.Color("#fca5a5"),
		success: lipgloss.Color("#6ee7b7"),
		errorBg: lipgloss.Color("#450a0a"),
	}
)

type styles struct {
	title       lipgloss.Style
	icon        lipgloss.Style
	section     lipgloss.Style
	panel       lipgloss.Style
	focused     lipgloss.Style
	placeholder lipgloss.Style
	muted       lipgloss.Style
	text        lipgloss.Style
	status      lipgloss.Style
	alert       lipgloss.Style
	selected    lipgloss.Style
}

func newStyles(p palette) styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)

	placeholder := lipgloss.NewStyle().
		Foreground(p.muted).
		Italic(true).
		Padding(1, 2)

	alert := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.error).
		Foreground(p.error).
		Background(p.errorBg).
		Bold(true).
		Padding(1, 2)

	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.primary).PaddingRight(2),
		icon:        lipgloss.NewStyle().Foreground(p.primary),
		section:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		panel:       panel,
		focused:     panel.BorderForeground(p.primary),
		placeholder: placeholder,
		muted:       lipgloss.NewStyle().Foreground(p.muted),
		text:        lipgloss.NewStyle().Foreground(p.text),
		status:      lipgloss.NewStyle().Foreground(p.success).MarginTop(1),
		alert:       alert,
		selected:    lipgloss.NewStyle().Foreground(p.primary).Bold(true),
	}
}

var (
	lightStyles = newStyles(lightPalette)
	darkStyles  = newStyles(darkPalette)
)

func stylesFor(dark bool) styles {
	if dark {
		return darkStyles
	}
	return lightStyles
}
