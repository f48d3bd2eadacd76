package config

import (
	"time"

	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
)

// Config represents the qrforge configuration document.
type Config struct {
	Version string `yaml:"version,omitempty" validate:"omitempty,semver"`
	Render  Render `yaml:"render"`
	Input   Input  `yaml:"input"`
	Picker  Picker `yaml:"picker"`
	Export  Export `yaml:"export"`
	Log     Log    `yaml:"log"`
}

// Render holds QR raster parameters.
type Render struct {
	Width  int    `yaml:"width" validate:"min=21,max=4096"`
	Margin int    `yaml:"margin" validate:"min=0,max=16"`
	Level  string `yaml:"level" validate:"required,qr_level"`
	Engine string `yaml:"engine" validate:"required,qr_engine"`
	Dark   string `yaml:"dark" validate:"required,qr_color"`
	Light  string `yaml:"light" validate:"required,qr_color"`
}

// Input configures the text orchestrator.
type Input struct {
	DebounceMS int `yaml:"debounce_ms" validate:"min=0,max=10000"`
}

// Picker configures the colour widgets.
type Picker struct {
	Swatches []string `yaml:"swatches,omitempty" validate:"omitempty,max=16,dive,qr_color"`
}

// Export configures where saved images go.
type Export struct {
	Dir string `yaml:"dir,omitempty"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	swatches := make([]string, 0, len(picker.DefaultSwatches))
	for _, c := range picker.DefaultSwatches {
		swatches = append(swatches, c.Hex())
	}
	return &Config{
		Version: "1.0",
		Render: Render{
			Width:  qrgen.DefaultWidth,
			Margin: qrgen.DefaultMargin,
			Level:  string(qrgen.DefaultLevel),
			Engine: qrgen.EngineSkip2,
			Dark:   "#000000",
			Light:  "#ffffff",
		},
		Input:  Input{DebounceMS: 300},
		Picker: Picker{Swatches: swatches},
		Export: Export{Dir: "."},
		Log:    Log{Level: "info"},
	}
}

// Debounce returns the quiet period before a typed change renders.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Input.DebounceMS) * time.Millisecond
}

// Level returns the parsed error-correction level.
func (c *Config) Level() qrgen.Level {
	l, err := qrgen.ParseLevel(c.Render.Level)
	if err != nil {
		return qrgen.DefaultLevel
	}
	return l
}

// DarkColor returns the parsed default foreground colour.
func (c *Config) DarkColor() picker.Color {
	return parseOr(c.Render.Dark, picker.Black)
}

// LightColor returns the parsed default background colour.
func (c *Config) LightColor() picker.Color {
	return parseOr(c.Render.Light, picker.White)
}

// SwatchColors returns the parsed palette, falling back to the defaults.
func (c *Config) SwatchColors() []picker.Color {
	out := make([]picker.Color, 0, len(c.Picker.Swatches))
	for _, s := range c.Picker.Swatches {
		if col, err := picker.ParseColor(s); err == nil {
			out = append(out, col)
		}
	}
	if len(out) == 0 {
		return picker.DefaultSwatches
	}
	return out
}

func parseOr(s string, fallback picker.Color) picker.Color {
	c, err := picker.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
