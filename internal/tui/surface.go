package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
	"github.com/alexisbeaulieu97/qrforge/internal/render"
	"github.com/alexisbeaulieu97/qrforge/internal/theme"
)

// resultView is the placeholder/result area the render pipeline draws into.
// It is shared by pointer between copies of the bubbletea Model.
type resultView struct {
	placeholder bool
	visible     bool
	raster      *qrgen.Raster
	preview     string
	href        string
	filename    string
	alert       string
}

func newResultView() *resultView {
	return &resultView{placeholder: true}
}

func (v *resultView) Clear() {
	v.raster = nil
	v.preview = ""
}

func (v *resultView) Render(r *qrgen.Raster) {
	v.raster = r
	v.preview = Preview(r)
}

func (v *resultView) SetDownloadTarget(url, filename string) {
	v.href = url
	v.filename = filename
}

func (v *resultView) ShowPlaceholder() {
	v.placeholder = true
	v.visible = false
}

func (v *resultView) ShowResult() {
	v.placeholder = false
	v.visible = true
}

func (v *resultView) Alert(msg string) {
	v.alert = msg
}

func (v *resultView) dismissAlert() {
	v.alert = ""
}

// Preview draws r with two raster cells per terminal character: the upper
// half block takes the top cell as foreground and the bottom cell as background.
func Preview(r *qrgen.Raster) string {
	if r == nil {
		return ""
	}
	cells := r.Cells()
	var out strings.Builder
	for y := 0; y < cells; y += 2 {
		for x := 0; x < cells; x++ {
			top := r.CellColor(x, y)
			style := lipgloss.NewStyle().Foreground(termColor(top))
			if y+1 < cells {
				bottom := r.CellColor(x, y+1)
				style = style.Background(termColor(bottom))
			}
			out.WriteString(style.Render("▀"))
		}
		if y+2 < cells {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func termColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(picker.Color(c).Hex())
}

// document records the applied theme mode and icon visibility.
type document struct {
	dark   bool
	hidden map[theme.Icon]bool
}

func newDocument() *document {
	return &document{hidden: make(map[theme.Icon]bool)}
}

func (d *document) SetDark(dark bool) { d.dark = dark }

func (d *document) IsDark() bool { return d.dark }

func (d *document) SetIconHidden(icon theme.Icon, hidden bool) { d.hidden[icon] = hidden }

func (d *document) iconVisible(icon theme.Icon) bool { return !d.hidden[icon] }

// textBuffer mirrors the text area so picker save callbacks read the latest value.
type textBuffer struct {
	value string
}

func (b *textBuffer) Text() string { return b.value }

var (
	_ render.Surface    = (*resultView)(nil)
	_ render.TextSource = (*textBuffer)(nil)
	_ theme.Document    = (*document)(nil)
)
