// Package render turns the current text and picker colours into a QR raster
// and publishes it to a Surface.
package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/qrforge/internal/logger"
	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
)

// AlertMessage is shown whenever encoding fails.
const AlertMessage = "An error occurred while generating the QR code. Please try again!"

// FilenamePrefix starts every suggested download filename.
const FilenamePrefix = "qr-code-text2-"

// Surface is the view a pipeline renders into.
type Surface interface {
	// Clear discards any previously rendered raster.
	Clear()
	// Render replaces the result content with r.
	Render(r *qrgen.Raster)
	SetDownloadTarget(url, filename string)
	// ShowPlaceholder shows the placeholder and hides the result.
	ShowPlaceholder()
	// ShowResult shows the result and hides the placeholder.
	ShowResult()
	Alert(msg string)
}

// Encoder is the encode-and-rasterize routine.
type Encoder interface {
	Encode(ctx context.Context, req qrgen.Request) (*qrgen.Raster, error)
}

// TextSource yields the current input text.
type TextSource interface {
	Text() string
}

// ColorSource yields a committed colour.
type ColorSource interface {
	Color() picker.Color
}

// Options holds raster parameters.
type Options struct {
	Width  int
	Margin int
	Level  qrgen.Level
}

// DefaultOptions returns 500px, a one module margin and level H.
func DefaultOptions() Options {
	return Options{Width: qrgen.DefaultWidth, Margin: qrgen.DefaultMargin, Level: qrgen.DefaultLevel}
}

// Outcome reports what Generate did.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeRendered
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Pipeline wires inputs, encoder and surface together.
type Pipeline struct {
	Text    TextSource
	Dark    ColorSource
	Light   ColorSource
	Encoder Encoder
	Surface Surface
	Options Options
	Clock   func() time.Time
	Logger  *logger.Logger
}

// Filename returns the suggested download name for a render at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("%s%d.png", FilenamePrefix, t.UnixMilli())
}

// Generate renders the current text. Empty text shows the placeholder without
// encoding. On failure the surface is alerted and left cleared; the placeholder
// is not restored.
func (p *Pipeline) Generate(ctx context.Context) Outcome {
	text := strings.TrimSpace(p.Text.Text())
	if text == "" {
		p.Surface.ShowPlaceholder()
		return OutcomeEmpty
	}

	dark := p.Dark.Color()
	light := p.Light.Color()

	p.Surface.Clear()

	raster, err := p.Encoder.Encode(ctx, qrgen.Request{
		Text:   text,
		Width:  p.Options.Width,
		Margin: p.Options.Margin,
		Level:  p.Options.Level,
		Dark:   dark.NRGBA(),
		Light:  light.NRGBA(),
	})
	if err != nil {
		return p.fail(err, text)
	}

	url, err := raster.DataURL()
	if err != nil {
		return p.fail(err, text)
	}

	p.Surface.Render(raster)
	p.Surface.ShowResult()
	p.Surface.SetDownloadTarget(url, Filename(p.now()))
	p.Logger.Debug("qr rendered", "modules", raster.Modules, "dark", dark.HEXA(), "light", light.HEXA())
	return OutcomeRendered
}

func (p *Pipeline) fail(err error, text string) Outcome {
	p.Logger.Error(err, "qr generation failed", "length", len(text))
	p.Surface.Alert(AlertMessage)
	return OutcomeFailed
}

func (p *Pipeline) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

// StaticText is a fixed TextSource.
type StaticText string

func (s StaticText) Text() string { return string(s) }

// StaticColor is a fixed ColorSource.
type StaticColor picker.Color

func (c StaticColor) Color() picker.Color { return picker.Color(c) }
