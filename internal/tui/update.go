package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(20, min(60, msg.Width/2-6)))
		m.help.Width = msg.Width
		return m, nil

	case debounceMsg:
		// Superseded or cancelled schedules carry a stale tag.
		if msg.tag == 0 || msg.tag != m.pendingTag {
			return m, nil
		}
		m.pendingTag = 0
		m.generate()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusText {
		return m.updateInput(msg)
	}
	if m.editingHex {
		var cmd tea.Cmd
		m.hexInput, cmd = m.hexInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The alert is modal.
	if m.result.alert != "" {
		if key.Matches(msg, m.keys.DismissAlert) {
			m.result.dismissAlert()
		}
		return m, nil
	}

	if m.editingHex {
		return m.handleHexKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleTheme):
		mode, err := m.theme.Toggle()
		if err != nil {
			m.logger.Error(err, "persist theme failed")
			m.setStatus("Theme applied but not saved", true)
		} else {
			m.setStatus(fmt.Sprintf("Theme: %s", mode), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.SavePNG):
		m.savePNG()
		return m, nil

	case key.Matches(msg, m.keys.CopyURL):
		m.copyDataURL()
		return m, nil
	}

	if m.focus == focusText {
		if key.Matches(msg, m.keys.Generate) {
			m.cancelPendingRender()
			m.generate()
			return m, nil
		}
		return m.updateInput(msg)
	}

	return m.handlePickerKey(msg)
}

// updateInput forwards msg to the text area and schedules a render when the text changed.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	after := m.input.Value()
	if after == before {
		return m, cmd
	}
	m.text.value = after
	return m, tea.Batch(cmd, m.scheduleRender())
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.focusedPicker()
	if p == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PrevSwatch):
		p.CycleSwatch(-1)
	case key.Matches(msg, m.keys.NextSwatch):
		p.CycleSwatch(1)
	case key.Matches(msg, m.keys.HueDown):
		p.ShiftHue(-15)
	case key.Matches(msg, m.keys.HueUp):
		p.ShiftHue(15)
	case key.Matches(msg, m.keys.OpacityDown):
		p.ShiftOpacity(-0.1)
	case key.Matches(msg, m.keys.OpacityUp):
		p.ShiftOpacity(0.1)
	case key.Matches(msg, m.keys.EditHex):
		m.editingHex = true
		m.hexInput.SetValue(p.Pending().HEXA())
		m.hexInput.CursorEnd()
		return m, m.hexInput.Focus()
	case key.Matches(msg, m.keys.SaveColor):
		// Save listeners render immediately.
		p.Save()
		m.setStatus(fmt.Sprintf("%s saved as %s", p.Name(), p.Color().HEXA()), false)
	case key.Matches(msg, m.keys.CancelColor):
		p.Cancel()
	}
	return m, nil
}

func (m Model) handleHexKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.focusedPicker()
	switch msg.Type {
	case tea.KeyEnter:
		if p != nil {
			if err := p.SetInput(m.hexInput.Value()); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
		}
		m.editingHex = false
		m.hexInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.editingHex = false
		m.hexInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.hexInput, cmd = m.hexInput.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.editingHex = false
	m.hexInput.Blur()
	if f == focusText {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) savePNG() {
	href, filename := m.result.href, m.result.filename
	if href == "" {
		m.setStatus("Nothing to save yet", true)
		return
	}
	data, err := qrgen.DecodeDataURL(href)
	if err != nil {
		m.logger.Error(err, "decode download target failed")
		m.setStatus("Could not decode the image", true)
		return
	}
	path := filepath.Join(m.exportDir, filename)
	if err := m.writeFile(path, data); err != nil {
		m.logger.Error(err, "save png failed", "path", path)
		m.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		return
	}
	m.logger.Info("png saved", "path", path, "bytes", len(data))
	m.setStatus("Saved "+path, false)
}

func (m *Model) copyDataURL() {
	if m.result.href == "" {
		m.setStatus("Nothing to copy yet", true)
		return
	}
	if err := m.clipboard(m.result.href); err != nil {
		m.logger.Error(err, "copy data url failed")
		m.setStatus("Clipboard unavailable", true)
		return
	}
	m.setStatus("Data-URL copied", false)
}

var _ tea.Model = Model{}
