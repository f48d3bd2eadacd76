package qrgen

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	blue  = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
)

func defaultRequest(text string) Request {
	return Request{Text: text, Width: DefaultWidth, Margin: DefaultMargin, Level: LevelH, Dark: blue, Light: white}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Level{"l": LevelL, "M": LevelM, " q ": LevelQ, "H": LevelH} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("X")
	require.Error(t, err)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	e, err := NewEngine("")
	require.NoError(t, err)
	assert.Equal(t, EngineSkip2, e.Name())

	e, err = NewEngine(EngineRSC)
	require.NoError(t, err)
	assert.Equal(t, EngineRSC, e.Name())

	_, err = NewEngine("zxing")
	require.Error(t, err)
}

func TestEnginesProduceSameSizedSymbols(t *testing.T) {
	t.Parallel()

	for _, name := range EngineNames() {
		engine, err := NewEngine(name)
		require.NoError(t, err)

		m, err := engine.Matrix("hello", LevelH)
		require.NoError(t, err, name)
		// "hello" at level H fits in version 1 (21 modules).
		assert.Equal(t, 21, m.Size(), name)
		// Finder pattern corners are dark.
		assert.True(t, m[0][0], name)
		assert.True(t, m[0][20], name)
		assert.True(t, m[20][0], name)
	}
}

func TestEncodeRasterGeometry(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	assert.Equal(t, EngineSkip2, g.Engine())
	r, err := g.Encode(context.Background(), defaultRequest("hello"))
	require.NoError(t, err)

	assert.Equal(t, 500, r.Width())
	assert.Equal(t, 500, r.Image.Bounds().Dy())
	assert.Equal(t, 21, r.Modules)
	assert.Equal(t, 23, r.Cells())
	assert.InDelta(t, 500.0/23.0, r.Scale, 1e-9)

	// Quiet zone is light, top-left finder module is dark.
	assert.Equal(t, white, r.Image.NRGBAAt(0, 0))
	assert.Equal(t, white, r.CellColor(0, 0))
	assert.Equal(t, blue, r.CellColor(1, 1))
	assert.Equal(t, white, r.CellColor(22, 22))
}

func TestRasterizeFallsBackToFixedScale(t *testing.T) {
	t.Parallel()

	m := Matrix{{true, false}, {false, true}}
	r := Rasterize(m, Request{Width: 1, Margin: 1})
	assert.Equal(t, 16, r.Width())
	assert.Equal(t, black, r.CellColor(1, 1))
	assert.Equal(t, white, r.CellColor(2, 1))
}

func TestEncodeRejectsOverCapacityText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("z", 3000)
	for _, name := range EngineNames() {
		engine, err := NewEngine(name)
		require.NoError(t, err)

		_, err = NewGenerator(engine).Encode(context.Background(), defaultRequest(text))
		var encodeErr *qrerrors.EncodeError
		require.ErrorAs(t, err, &encodeErr, name)
		assert.Equal(t, name, encodeErr.Engine)
	}
}

func TestEncodeHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(nil).Encode(ctx, defaultRequest("hello"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDataURLRoundTrip(t *testing.T) {
	t.Parallel()

	r, err := NewGenerator(RSCEngine{}).Encode(context.Background(), defaultRequest("https://example.com"))
	require.NoError(t, err)

	url, err := r.DataURL()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	data, err := DecodeDataURL(url)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())

	_, err = DecodeDataURL("data:text/plain,hello")
	require.Error(t, err)
}
