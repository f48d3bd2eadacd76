// Package tui is the interactive QR studio: a text area whose edits render a
// QR symbol after a quiet period, two colour pickers, and a light/dark theme.
package tui

import (
	"context"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/qrforge/internal/config"
	"github.com/alexisbeaulieu97/qrforge/internal/logger"
	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/prefs"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
	"github.com/alexisbeaulieu97/qrforge/internal/render"
	"github.com/alexisbeaulieu97/qrforge/internal/theme"
)

type focusArea int

const (
	focusText focusArea = iota
	focusDark
	focusLight
	focusCount
)

// debounceMsg fires when a scheduled render's quiet period elapses.
type debounceMsg struct {
	tag int
}

// Options wires the model's collaborators. Zero values get production defaults.
type Options struct {
	Config    *config.Config
	Encoder   render.Encoder
	Store     prefs.Store
	DarkHint  theme.HintFunc
	Clock     func() time.Time
	Logger    *logger.Logger
	Clipboard func(string) error
	WriteFile func(path string, data []byte) error
	Context   context.Context
}

// Model is the bubbletea state of the studio.
type Model struct {
	ctx    context.Context
	logger *logger.Logger

	input      textarea.Model
	hexInput   textinput.Model
	editingHex bool
	text       *textBuffer
	focus      focusArea

	dark  *picker.Picker
	light *picker.Picker

	pipeline *render.Pipeline
	result   *resultView
	doc      *document
	theme    *theme.Controller

	keys keyMap
	help help.Model

	// debounce slot: pendingTag is the tag of the scheduled render, 0 when none.
	debounce   time.Duration
	pendingTag int
	lastTag    int

	exportDir string
	clipboard func(string) error
	writeFile func(string, []byte) error

	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel builds the studio and applies the persisted theme.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = prefs.NewMemoryStore(nil)
	}
	enc := opts.Encoder
	if enc == nil {
		engine, err := qrgen.NewEngine(cfg.Render.Engine)
		if err != nil {
			return Model{}, err
		}
		gen := qrgen.NewGenerator(engine)
		log.Debug("qr engine selected", "engine", gen.Engine())
		enc = gen
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	writeFn := opts.WriteFile
	if writeFn == nil {
		writeFn = func(path string, data []byte) error { return os.WriteFile(path, data, 0o644) }
	}

	swatches := picker.WithSwatches(cfg.SwatchColors())
	dark := picker.New(picker.DarkID, cfg.DarkColor(), swatches)
	light := picker.New(picker.LightID, cfg.LightColor(), swatches)

	input := textarea.New()
	input.Placeholder = "Enter text or a URL…"
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetWidth(48)
	input.SetHeight(4)
	input.Focus()

	hexInput := textinput.New()
	hexInput.Placeholder = "#RRGGBBAA or rgba(r, g, b, a)"
	hexInput.CharLimit = 32

	text := &textBuffer{}
	result := newResultView()
	doc := newDocument()

	pipeline := &render.Pipeline{
		Text:    text,
		Dark:    dark,
		Light:   light,
		Encoder: enc,
		Surface: result,
		Options: render.Options{Width: cfg.Render.Width, Margin: cfg.Render.Margin, Level: cfg.Level()},
		Clock:   opts.Clock,
		Logger:  log.WithFields(map[string]any{"component": "render"}),
	}

	onSave := func(c picker.Color) {
		log.Debug("colour saved", "color", c.HEXA())
		pipeline.Generate(ctx)
	}
	dark.OnSave(onSave)
	light.OnSave(onSave)

	controller := theme.NewController(store, opts.DarkHint, doc)
	mode := controller.ApplyPreference()
	log.Info("studio started", "theme", mode.String(), "debounce", cfg.Debounce().String())

	return Model{
		ctx:       ctx,
		logger:    log,
		input:     input,
		hexInput:  hexInput,
		text:      text,
		focus:     focusText,
		dark:      dark,
		light:     light,
		pipeline:  pipeline,
		result:    result,
		doc:       doc,
		theme:     controller,
		keys:      defaultKeyMap(),
		help:      help.New(),
		debounce:  cfg.Debounce(),
		exportDir: cfg.Export.Dir,
		clipboard: copyFn,
		writeFile: writeFn,
		width:     100,
		height:    32,
	}, nil
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// PendingRender reports whether a debounced render is scheduled.
func (m Model) PendingRender() bool {
	return m.pendingTag != 0
}

// DarkMode reports whether dark mode is applied.
func (m Model) DarkMode() bool {
	return m.doc.dark
}

// Alert returns the modal alert text, if any.
func (m Model) Alert() string {
	return m.result.alert
}

// DownloadTarget returns the data-URL and filename of the last render.
func (m Model) DownloadTarget() (string, string) {
	return m.result.href, m.result.filename
}

// scheduleRender replaces the pending render with a new one after the quiet period.
func (m *Model) scheduleRender() tea.Cmd {
	m.lastTag++
	tag := m.lastTag
	m.pendingTag = tag
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
}

func (m *Model) cancelPendingRender() {
	m.pendingTag = 0
}

func (m *Model) generate() render.Outcome {
	outcome := m.pipeline.Generate(m.ctx)
	m.logger.Debug("generate", "outcome", outcome.String())
	return outcome
}

func (m *Model) focusedPicker() *picker.Picker {
	switch m.focus {
	case focusDark:
		return m.dark
	case focusLight:
		return m.light
	default:
		return nil
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}
