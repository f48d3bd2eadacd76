package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/theme"
)

const placeholderText = "Type something to generate a QR code"

// View renders the current state of the model.
func (m Model) View() string {
	s := stylesFor(m.doc.dark)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.title.Render("QR Studio"),
		s.icon.Render(m.themeIcon()),
		s.muted.Render("  ctrl+t"),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.panel(s, focusText, "Text", m.input.View()),
		m.pickerView(s, m.dark, focusDark, "Foreground"),
		m.pickerView(s, m.light, focusLight, "Background"),
	)

	right := m.resultView(s)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	sections := []string{header, body}
	if m.status != "" {
		st := s.status
		if m.statusErr {
			st = st.Foreground(s.alert.GetForeground())
		}
		sections = append(sections, st.Render(m.status))
	}
	sections = append(sections, m.help.View(helpKeys{keys: m.keys, picker: m.focus != focusText}))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// themeIcon shows whichever icon is visible: the sun in dark mode, the moon in light mode.
func (m Model) themeIcon() string {
	if m.doc.iconVisible(theme.IconSun) {
		return "☀"
	}
	return "☾"
}

func (m Model) panel(s styles, area focusArea, title, content string) string {
	style := s.panel
	if m.focus == area {
		style = s.focused
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, s.section.Render(title), content))
}

func (m Model) pickerView(s styles, p *picker.Picker, area focusArea, title string) string {
	var swatches []string
	for i, c := range p.Swatches() {
		chip := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
		if i == p.Selected() {
			chip = s.selected.Render("[") + chip + s.selected.Render("]")
		} else {
			chip = " " + chip + " "
		}
		swatches = append(swatches, chip)
	}

	preview := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Pending().Hex())).Render("████")
	value := fmt.Sprintf("%s %s", preview, s.text.Render(p.Pending().HEXA()))
	if p.Dirty() {
		value += s.muted.Render(fmt.Sprintf("  unsaved (was %s)", p.Color().HEXA()))
	}

	lines := []string{strings.Join(swatches, ""), value, s.muted.Render(p.Pending().RGBA())}
	if m.editingHex && m.focus == area {
		lines = append(lines, m.hexInput.View())
	}
	return m.panel(s, area, fmt.Sprintf("%s (#%s)", title, p.Name()), strings.Join(lines, "\n"))
}

func (m Model) resultView(s styles) string {
	if m.result.alert != "" {
		return s.alert.Render(m.result.alert + "\n\n" + "enter to dismiss")
	}

	var content string
	switch {
	case m.result.placeholder:
		content = s.placeholder.Render(placeholderText)
	case m.result.visible && m.result.raster != nil:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.result.preview,
			s.muted.Render(m.result.filename),
		)
	default:
		// Shown but cleared: the last render failed.
		content = s.muted.Render("No QR code")
	}
	return s.panel.Render(content)
}
