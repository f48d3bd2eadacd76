package render

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qrforge/internal/logger"
	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
)

type recordingSurface struct {
	calls       []string
	raster      *qrgen.Raster
	href        string
	filename    string
	placeholder bool
	result      bool
	alerts      []string
}

func (s *recordingSurface) Clear() {
	s.calls = append(s.calls, "clear")
	s.raster = nil
}

func (s *recordingSurface) Render(r *qrgen.Raster) {
	s.calls = append(s.calls, "render")
	s.raster = r
}

func (s *recordingSurface) SetDownloadTarget(url, filename string) {
	s.calls = append(s.calls, "download")
	s.href, s.filename = url, filename
}

func (s *recordingSurface) ShowPlaceholder() {
	s.calls = append(s.calls, "placeholder")
	s.placeholder, s.result = true, false
}

func (s *recordingSurface) ShowResult() {
	s.calls = append(s.calls, "result")
	s.placeholder, s.result = false, true
}

func (s *recordingSurface) Alert(msg string) {
	s.calls = append(s.calls, "alert")
	s.alerts = append(s.alerts, msg)
}

type countingEncoder struct {
	inner    Encoder
	requests []qrgen.Request
}

func (e *countingEncoder) Encode(ctx context.Context, req qrgen.Request) (*qrgen.Raster, error) {
	e.requests = append(e.requests, req)
	return e.inner.Encode(ctx, req)
}

type failingEncoder struct{}

func (failingEncoder) Encode(context.Context, qrgen.Request) (*qrgen.Raster, error) {
	return nil, errors.New("boom")
}

var filenamePattern = regexp.MustCompile(`^qr-code-text2-\d+\.png$`)

func newPipeline(text string, enc Encoder, surface Surface) *Pipeline {
	return &Pipeline{
		Text:    StaticText(text),
		Dark:    picker.New(picker.DarkID, picker.Black),
		Light:   picker.New(picker.LightID, picker.White),
		Encoder: enc,
		Surface: surface,
		Options: DefaultOptions(),
		Clock:   func() time.Time { return time.UnixMilli(1700000000123) },
	}
}

func TestGenerateRendersHello(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	enc := &countingEncoder{inner: qrgen.NewGenerator(nil)}
	p := newPipeline("  hello \n", enc, surface)

	require.Equal(t, OutcomeRendered, p.Generate(context.Background()))

	require.Len(t, enc.requests, 1)
	req := enc.requests[0]
	assert.Equal(t, "hello", req.Text)
	assert.Equal(t, 500, req.Width)
	assert.Equal(t, 1, req.Margin)
	assert.Equal(t, qrgen.LevelH, req.Level)
	assert.Equal(t, picker.Black.NRGBA(), req.Dark)
	assert.Equal(t, picker.White.NRGBA(), req.Light)

	assert.Equal(t, []string{"clear", "render", "result", "download"}, surface.calls)
	require.NotNil(t, surface.raster)
	assert.True(t, surface.result)
	assert.False(t, surface.placeholder)
	assert.True(t, strings.HasPrefix(surface.href, "data:image/png"))
	assert.Regexp(t, filenamePattern, surface.filename)
	assert.Equal(t, "qr-code-text2-1700000000123.png", surface.filename)
}

func TestGenerateEmptyTextShowsPlaceholder(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t"} {
		surface := &recordingSurface{result: true}
		enc := &countingEncoder{inner: qrgen.NewGenerator(nil)}

		assert.Equal(t, OutcomeEmpty, newPipeline(text, enc, surface).Generate(context.Background()))
		assert.Empty(t, enc.requests)
		assert.Equal(t, []string{"placeholder"}, surface.calls)
		assert.True(t, surface.placeholder)
		assert.False(t, surface.result)
		assert.Empty(t, surface.href)
	}
}

func TestGenerateOverCapacityAlertsAndStaysCleared(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	p := newPipeline("first", qrgen.NewGenerator(nil), surface)
	require.Equal(t, OutcomeRendered, p.Generate(context.Background()))
	previousHref := surface.href

	surface.calls = nil
	p.Text = StaticText(strings.Repeat("x", 4000))
	assert.Equal(t, OutcomeFailed, p.Generate(context.Background()))

	assert.Equal(t, []string{"clear", "alert"}, surface.calls)
	assert.Equal(t, []string{AlertMessage}, surface.alerts)
	assert.Nil(t, surface.raster, "previous raster is not restored")
	assert.True(t, surface.result, "result visibility is left as it was")
	assert.Equal(t, previousHref, surface.href)
}

func TestGenerateFailureDoesNotRestorePlaceholder(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{placeholder: true}
	assert.Equal(t, OutcomeFailed, newPipeline("hello", failingEncoder{}, surface).Generate(context.Background()))
	assert.Equal(t, []string{"clear", "alert"}, surface.calls)
	assert.True(t, surface.placeholder)
}

func TestGenerateUsesCommittedPickerColours(t *testing.T) {
	t.Parallel()

	dark := picker.New(picker.DarkID, picker.Black)
	require.NoError(t, dark.SelectSwatch(2))

	surface := &recordingSurface{}
	enc := &countingEncoder{inner: qrgen.NewGenerator(nil)}
	p := newPipeline("hello", enc, surface)
	p.Dark = dark

	p.Generate(context.Background())
	assert.Equal(t, picker.Black.NRGBA(), enc.requests[0].Dark, "unsaved edits are ignored")

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)
	p.Logger = log

	dark.Save()
	p.Generate(context.Background())
	assert.Equal(t, picker.MustParse("#3b82f6").NRGBA(), enc.requests[1].Dark)
	assert.Contains(t, buf.String(), `"dark":"#3B82F6FF"`)
	assert.Contains(t, buf.String(), `"light":"#FFFFFFFF"`)
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "rendered", OutcomeRendered.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
