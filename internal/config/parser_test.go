package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name: "partial document keeps defaults",
			contents: `render:
  dark: "#3b82f6"
  engine: rsc
input:
  debounce_ms: 150
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 500, cfg.Render.Width)
				require.Equal(t, 1, cfg.Render.Margin)
				require.Equal(t, qrgen.LevelH, cfg.Level())
				require.Equal(t, qrgen.EngineRSC, cfg.Render.Engine)
				require.Equal(t, picker.MustParse("#3b82f6"), cfg.DarkColor())
				require.Equal(t, picker.White, cfg.LightColor())
				require.Equal(t, 150*time.Millisecond, cfg.Debounce())
				require.Len(t, cfg.SwatchColors(), 8)
			},
		},
		{
			name: "custom swatches replace the palette",
			contents: `picker:
  swatches: ["#111111", "rgba(0, 0, 0, 0.5)"]
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, []picker.Color{{R: 0x11, G: 0x11, B: 0x11, A: 255}, {A: 128}}, cfg.SwatchColors())
			},
		},
		{
			name:     "malformed yaml reports a line",
			contents: "render:\n  width: [1,\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *qrerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Greater(t, parseErr.Line, 0)
				require.Nil(t, cfg)
			},
		},
		{
			name: "invalid colour is a validation error",
			contents: `render:
  light: "ivory"
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *qrerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "render.light", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig(writeConfig(t, tc.contents))
			tc.assert(t, cfg, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *qrerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load(writeConfig(t, "render:\n  level: Z\n"))
	require.Error(t, err)
}

func TestExampleConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, qrgen.LevelH, cfg.Level())
	require.Equal(t, picker.MustParse("#1e293b"), cfg.DarkColor())
	require.Len(t, cfg.SwatchColors(), len(picker.DefaultSwatches))
}
