// Package qrgen encodes text into QR symbols and rasterizes them into
// colourized PNG images.
package qrgen

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

// Defaults applied by the render pipeline.
const (
	DefaultWidth  = 500
	DefaultMargin = 1
	DefaultLevel  = LevelH

	// fallbackScale is used when the requested width cannot fit one pixel per module.
	fallbackScale = 4
)

const dataURLPrefix = "data:image/png;base64,"

// Request describes a single encode-and-rasterize call.
type Request struct {
	Text   string
	Width  int
	Margin int
	Level  Level
	Dark   color.Color
	Light  color.Color
}

// Raster is a rendered QR symbol.
type Raster struct {
	Image   *image.NRGBA
	Modules int
	Margin  int
	Scale   float64
}

// Generator combines an Engine with the rasterizer.
type Generator struct {
	engine Engine
}

// NewGenerator wraps engine; a nil engine selects skip2.
func NewGenerator(engine Engine) *Generator {
	if engine == nil {
		engine = Skip2Engine{}
	}
	return &Generator{engine: engine}
}

// Engine returns the underlying engine name.
func (g *Generator) Engine() string {
	return g.engine.Name()
}

// Encode produces a raster for req or an EncodeError.
func (g *Generator) Encode(ctx context.Context, req Request) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Level == "" {
		req.Level = DefaultLevel
	}
	if req.Margin < 0 {
		return nil, qrerrors.NewEncodeError(g.engine.Name(), fmt.Errorf("negative margin %d", req.Margin))
	}

	matrix, err := g.engine.Matrix(req.Text, req.Level)
	if err != nil {
		return nil, qrerrors.NewEncodeError(g.engine.Name(), err)
	}
	if matrix.Size() == 0 {
		return nil, qrerrors.NewEncodeError(g.engine.Name(), fmt.Errorf("empty symbol"))
	}

	return Rasterize(matrix, req), nil
}

// Rasterize draws matrix at the requested width with a quiet zone of req.Margin modules.
func Rasterize(matrix Matrix, req Request) *Raster {
	dark, light := req.Dark, req.Light
	if dark == nil {
		dark = color.NRGBA{A: 255}
	}
	if light == nil {
		light = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	darkC := color.NRGBAModel.Convert(dark).(color.NRGBA)
	lightC := color.NRGBAModel.Convert(light).(color.NRGBA)

	n := matrix.Size()
	cells := n + 2*req.Margin
	scale := float64(fallbackScale)
	side := cells * fallbackScale
	if req.Width >= cells {
		scale = float64(req.Width) / float64(cells)
		side = req.Width
	}
	scaledMargin := int(math.Floor(float64(req.Margin) * scale))

	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			c := lightC
			if x >= scaledMargin && y >= scaledMargin && x < side-scaledMargin && y < side-scaledMargin {
				row := int(math.Floor(float64(y-scaledMargin) / scale))
				col := int(math.Floor(float64(x-scaledMargin) / scale))
				if row < n && col < n && matrix[row][col] {
					c = darkC
				}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return &Raster{Image: img, Modules: n, Margin: req.Margin, Scale: scale}
}

// Width returns the raster side in pixels.
func (r *Raster) Width() int {
	return r.Image.Bounds().Dx()
}

// CellColor returns the colour of module cell (col,row), where cells include the margin.
func (r *Raster) CellColor(col, row int) color.NRGBA {
	last := r.Width() - 1
	x := min(int((float64(col)+0.5)*r.Scale), last)
	y := min(int((float64(row)+0.5)*r.Scale), last)
	return r.Image.NRGBAAt(x, y)
}

// Cells returns the number of cells per side including the margin.
func (r *Raster) Cells() int {
	return r.Modules + 2*r.Margin
}

// PNG encodes the raster.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG as a base64 data-URL.
func (r *Raster) DataURL() (string, error) {
	data, err := r.PNG()
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL extracts the PNG bytes from a data-URL produced by DataURL.
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, dataURLPrefix) {
		return nil, fmt.Errorf("not a png data url")
	}
	data, err := base64.StdEncoding.DecodeString(url[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return data, nil
}
