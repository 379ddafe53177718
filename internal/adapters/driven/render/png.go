// Package render draws the shopping list into a PNG snapshot.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

// Layout constants, in pixels.
const (
	Width    = 600
	Padding  = 20
	FontSize = 20
	// lineGap is added to the glyph height to get the line pitch.
	lineGap = 10
	// Title is drawn centred above the items.
	Title = "Shopping List"
)

// Ensure PNGRenderer implements the interface.
var _ driven.Renderer = (*PNGRenderer)(nil)

// PNGRenderer renders lists with the Go Regular font.
type PNGRenderer struct {
	once    sync.Once
	face    font.Face
	initErr error
	// mu guards face; font.Face is not safe for concurrent use.
	mu sync.Mutex
}

// NewPNGRenderer creates a renderer. The font is parsed on first use.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

func (r *PNGRenderer) loadFace() (font.Face, error) {
	r.once.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			r.initErr = fmt.Errorf("parse font: %w", err)
			return
		}
		r.face, r.initErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    FontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return r.face, r.initErr
}

// Colors returns the foreground and background used for theme.
func Colors(theme domain.Theme) (fg, bg color.RGBA) {
	if theme == domain.ThemeDark {
		return color.RGBA{241, 241, 241, 255}, color.RGBA{30, 30, 30, 255}
	}
	return color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}
}

// Render draws items as "- item" lines under a centred title. Blank items
// are skipped; an empty list draws a single placeholder line.
func (r *PNGRenderer) Render(items []string, theme domain.Theme) ([]byte, error) {
	face, err := r.loadFace()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		lines = []string{domain.EmptyListNotice}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lineHeight := LineHeight(face)
	height := Padding*2 + lineHeight*len(lines) + 40

	fg, bg := Colors(theme)
	img := image.NewRGBA(image.Rect(0, 0, Width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: &image.Uniform{C: fg}, Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	titleWidth := d.MeasureString(Title).Ceil()
	drawAt(d, (Width-titleWidth)/2, Padding+ascent, Title)

	y := Padding + lineHeight + 10
	for _, line := range lines {
		drawAt(d, Padding, y+ascent, "- "+line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// LineHeight is the glyph height of "Ay" plus the line gap.
func LineHeight(face font.Face) int {
	b, _ := font.BoundString(face, "Ay")
	return (b.Max.Y - b.Min.Y).Ceil() + lineGap
}

// drawAt draws s with its baseline at (x, baseline).
func drawAt(d *font.Drawer, x, baseline int, s string) {
	d.Dot = fixed.P(x, baseline)
	d.DrawString(s)
}
