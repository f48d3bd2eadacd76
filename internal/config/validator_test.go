package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		mutate    func(cfg *Config)
		wantField string
	}{
		{name: "defaults are valid"},
		{name: "bad version", mutate: func(c *Config) { c.Version = "beta" }, wantField: "version"},
		{name: "tiny width", mutate: func(c *Config) { c.Render.Width = 10 }, wantField: "render.width"},
		{name: "width below margin", mutate: func(c *Config) { c.Render.Width = 25; c.Render.Margin = 4 }, wantField: "render.width"},
		{name: "negative margin", mutate: func(c *Config) { c.Render.Margin = -1 }, wantField: "render.margin"},
		{name: "unknown level", mutate: func(c *Config) { c.Render.Level = "X" }, wantField: "render.level"},
		{name: "lowercase level", mutate: func(c *Config) { c.Render.Level = "q" }},
		{name: "unknown engine", mutate: func(c *Config) { c.Render.Engine = "zxing" }, wantField: "render.engine"},
		{name: "bad dark colour", mutate: func(c *Config) { c.Render.Dark = "#12" }, wantField: "render.dark"},
		{name: "bad swatch", mutate: func(c *Config) { c.Picker.Swatches = []string{"#000", "nope"} }, wantField: "picker.swatches[1]"},
		{name: "slow debounce", mutate: func(c *Config) { c.Input.DebounceMS = 60000 }, wantField: "input.debounce_ms"},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantField: "log.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			if tc.mutate != nil {
				tc.mutate(cfg)
			}

			err := ValidateConfig(cfg)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			var validationErr *qrerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	var validationErr *qrerrors.ValidationError
	require.ErrorAs(t, ValidateConfig(nil), &validationErr)
}

func TestValidateConfigMessagesNameTheRule(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Render.Dark = "#12"
	require.EqualError(t, ValidateConfig(cfg), `invalid render.dark "#12": must be #rgb, #rrggbb, #rrggbbaa or rgba(r, g, b, a)`)

	cfg = Default()
	cfg.Render.Engine = "zxing"
	require.EqualError(t, ValidateConfig(cfg), `invalid render.engine "zxing": must be one of skip2, rsc`)

	cfg = Default()
	cfg.Render.Width = 25
	cfg.Render.Margin = 4
	require.EqualError(t, ValidateConfig(cfg), "invalid render.width: must be at least 29 pixels for margin 4")
}
