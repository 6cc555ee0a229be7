package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer rasterizes one script line into a full-size frame: white text,
// black background, word-wrapped and centered both ways.
type Renderer struct {
	Face       font.Face
	Foreground color.Color
	Background color.Color
}

func NewRenderer(face font.Face) *Renderer {
	return &Renderer{
		Face:       face,
		Foreground: color.White,
		Background: color.Black,
	}
}

type lineBox struct {
	text   string
	bounds fixed.Rectangle26_6
	width  int
	height int
}

// RenderFrame produces a w×h opaque RGBA buffer with the text block centered
// vertically and each line centered horizontally. Every committed line fits
// inside w-2*margin, except a single word that alone exceeds it: such a word
// is placed on its own line, unsplit.
func (r *Renderer) RenderFrame(text string, w, h, margin, lineGap int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	lines := Wrap(r.Face, text, w-2*margin)
	if len(lines) == 0 {
		return img
	}

	boxes := make([]lineBox, len(lines))
	total := 0
	for i, line := range lines {
		b, _ := font.BoundString(r.Face, line)
		boxes[i] = lineBox{
			text:   line,
			bounds: b,
			width:  (b.Max.X - b.Min.X).Ceil(),
			height: (b.Max.Y - b.Min.Y).Ceil(),
		}
		total += boxes[i].height
	}
	total += (len(lines) - 1) * lineGap

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.Foreground),
		Face: r.Face,
	}

	y := (h - total) / 2
	for _, box := range boxes {
		x := (w - box.width) / 2
		// Dot is on the baseline; shift by the ink bounds so that the top-left
		// of the ink lands exactly at (x, y).
		d.Dot = fixed.Point26_6{
			X: fixed.I(x) - box.bounds.Min.X,
			Y: fixed.I(y) - box.bounds.Min.Y,
		}
		d.DrawString(box.text)
		y += box.height + lineGap
	}

	return img
}

// Wrap packs words greedily: a word joins the current line unless the
// rendered width would exceed maxWidth; an oversized first word still takes
// the line alone (no hyphenation, no truncation).
func Wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current == "" || LineWidth(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// LineWidth measures the rendered ink width of a line in pixels.
func LineWidth(face font.Face, line string) int {
	b, _ := font.BoundString(face, line)
	return (b.Max.X - b.Min.X).Ceil()
}
