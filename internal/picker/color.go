package picker

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b) and
// rgba(r, g, b, a) where a is in [0,1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], false)
	}
	return Color{}, fmt.Errorf("unsupported colour %q", s)
}

// MustParse is ParseColor for package-level literals.
func MustParse(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid hex colour length %d", len(h))
	}

	rgb, err := colorful.Hex("#" + h[:6])
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", h, err)
	}
	r, g, b := rgb.RGB255()

	alpha := uint8(255)
	if len(h) == 8 {
		v, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q: %w", h[6:], err)
		}
		alpha = uint8(v)
	}
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunc(body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %q out of range", strings.TrimSpace(parts[i]))
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("alpha %q out of range", strings.TrimSpace(parts[3]))
		}
		alpha = uint8(math.Round(a * 255))
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// HEXA renders the colour as an 8-digit hex string including alpha, e.g. #000000FF.
func (c Color) HEXA() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Hex renders the opaque part of the colour, suitable for terminal styling.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA renders the colour in CSS rgba() notation.
func (c Color) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.Opacity(), 'f', -1, 64))
}

// Opacity returns alpha in [0,1] rounded to two decimals.
func (c Color) Opacity() float64 {
	return math.Round(float64(c.A)/255*100) / 100
}

// NRGBA converts to the image/color representation used by the rasterizer.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	return c.HEXA()
}

// hue returns the HSV hue in degrees.
func (c Color) hue() float64 {
	h, _, _ := c.colorful().Hsv()
	return h
}

// withHue keeps saturation, value and alpha while replacing the hue.
func (c Color) withHue(deg float64) Color {
	_, s, v := c.colorful().Hsv()
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	r, g, b := colorful.Hsv(deg, s, v).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
