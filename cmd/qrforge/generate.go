package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/qrforge/internal/config"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
	"github.com/alexisbeaulieu97/qrforge/internal/render"
	"github.com/alexisbeaulieu97/qrforge/internal/tui"
)

var errNoText = errors.New("no text to encode")

type generateOptions struct {
	Out     string
	DataURL bool
	Preview bool
	Width   int
	Margin  int
	Level   string
	Engine  string
	Dark    string
	Light   string
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	defaults := config.Default()
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Render a QR code to a PNG file or data-URL",
		Long: `Render a QR code without opening the studio. Text comes from the arguments,
or from standard input when none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the PNG to this path (default: export dir and suggested filename)")
	cmd.Flags().BoolVar(&opts.DataURL, "data-url", false, "Print the PNG data-URL instead of writing a file")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Print a preview when stdout is a terminal")
	cmd.Flags().IntVar(&opts.Width, "width", defaults.Render.Width, "Image width in pixels")
	cmd.Flags().IntVar(&opts.Margin, "margin", defaults.Render.Margin, "Quiet zone in modules")
	cmd.Flags().StringVar(&opts.Level, "level", defaults.Render.Level, "Error correction level (L, M, Q, H)")
	cmd.Flags().StringVar(&opts.Engine, "engine", defaults.Render.Engine, fmt.Sprintf("QR engine (%s)", strings.Join(qrgen.EngineNames(), ", ")))
	cmd.Flags().StringVar(&opts.Dark, "dark", defaults.Render.Dark, "Module colour")
	cmd.Flags().StringVar(&opts.Light, "light", defaults.Render.Light, "Background colour")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags, opts generateOptions, args []string) error {
	app, err := loadApp(cmd, root, false)
	if err != nil {
		return err
	}
	defer app.close()

	cfg := app.cfg
	applyGenerateFlags(cmd, cfg, opts)
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	engine, err := qrgen.NewEngine(cfg.Render.Engine)
	if err != nil {
		return err
	}
	gen := qrgen.NewGenerator(engine)
	enc := &capturingEncoder{inner: gen}
	surface := &cliSurface{}

	pipeline := &render.Pipeline{
		Text:    render.StaticText(text),
		Dark:    render.StaticColor(cfg.DarkColor()),
		Light:   render.StaticColor(cfg.LightColor()),
		Encoder: enc,
		Surface: surface,
		Options: render.Options{Width: cfg.Render.Width, Margin: cfg.Render.Margin, Level: cfg.Level()},
		Logger:  app.log.WithFields(map[string]any{"component": "render"}),
	}

	switch pipeline.Generate(cmd.Context()) {
	case render.OutcomeEmpty:
		return errNoText
	case render.OutcomeFailed:
		if enc.err == nil {
			return errors.New(surface.alert)
		}
		return fmt.Errorf("%s: %w", surface.alert, enc.err)
	}

	app.log.Debug("qr generated", "engine", gen.Engine(), "modules", surface.raster.Modules)

	out := cmd.OutOrStdout()
	if opts.Preview && isTerminal(out) {
		fmt.Fprintln(out, tui.Preview(surface.raster))
	}

	if opts.DataURL {
		fmt.Fprintln(out, surface.href)
		return nil
	}

	path := opts.Out
	if path == "" {
		path = filepath.Join(cfg.Export.Dir, surface.filename)
	}
	data, err := surface.raster.PNG()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		app.log.Error(err, "write png failed", "path", path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	app.log.Debug("png written", "path", path, "bytes", len(data), "engine", gen.Engine())
	fmt.Fprintln(out, path)
	return nil
}

// applyGenerateFlags overrides configuration with explicitly set flags.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config, opts generateOptions) {
	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Render.Width = opts.Width
	}
	if changed("margin") {
		cfg.Render.Margin = opts.Margin
	}
	if changed("level") {
		cfg.Render.Level = strings.ToUpper(opts.Level)
	}
	if changed("engine") {
		cfg.Render.Engine = opts.Engine
	}
	if changed("dark") {
		cfg.Render.Dark = opts.Dark
	}
	if changed("light") {
		cfg.Render.Light = opts.Light
	}
}

func readText(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// capturingEncoder keeps the last encode error so the command can report it.
type capturingEncoder struct {
	inner render.Encoder
	err   error
}

func (e *capturingEncoder) Encode(ctx context.Context, req qrgen.Request) (*qrgen.Raster, error) {
	r, err := e.inner.Encode(ctx, req)
	e.err = err
	return r, err
}

// cliSurface collects the pipeline's output for the headless command.
type cliSurface struct {
	raster   *qrgen.Raster
	href     string
	filename string
	alert    string
}

func (s *cliSurface) Clear() { s.raster = nil }
func (s *cliSurface) Render(r *qrgen.Raster) { s.raster = r }
func (s *cliSurface) ShowPlaceholder() {}
func (s *cliSurface) ShowResult() {}
func (s *cliSurface) Alert(msg string) { s.alert = msg }

func (s *cliSurface) SetDownloadTarget(url, filename string) {
	s.href = url
	s.filename = filename
}

var _ render.Surface = (*cliSurface)(nil)
