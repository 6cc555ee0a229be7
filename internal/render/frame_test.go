package render

import (
	"image"
	"strings"
	"testing"
)

func TestRenderFrameDimensions(t *testing.T) {
	face := NewFace("", 90)
	r := NewRenderer(face)

	formats := []struct {
		w, h int
	}{
		{1080, 1920},
		{1080, 1080},
		{1920, 1080},
	}

	for _, f := range formats {
		img := r.RenderFrame("Hello world", f.w, f.h, 80, 20)
		b := img.Bounds()
		if b.Dx() != f.w || b.Dy() != f.h {
			t.Errorf("Expected %dx%d frame, got %dx%d", f.w, f.h, b.Dx(), b.Dy())
		}
		// The encoder reads the buffer as opaque RGBA.
		if a := img.RGBAAt(f.w/2, f.h/2).A; a != 0xFF {
			t.Errorf("Expected opaque frame, alpha %d at center", a)
		}
	}
}

func TestWrapWidths(t *testing.T) {
	face := NewFace("", 90)
	maxWidth := 1080 - 2*80

	text := "this is a somewhat longer script line that should wrap onto several lines of the frame"
	lines := Wrap(face, text, maxWidth)
	if len(lines) < 2 {
		t.Fatalf("Expected wrapping into multiple lines, got %d: %v", len(lines), lines)
	}

	for _, line := range lines {
		w := LineWidth(face, line)
		if w > maxWidth && strings.Contains(line, " ") {
			t.Errorf("Committed line %q is %dpx wide, max %d", line, w, maxWidth)
		}
	}

	// Words survive wrapping in order, none lost.
	joined := strings.Join(lines, " ")
	if joined != text {
		t.Errorf("Wrap lost or reordered words:\n got: %q\nwant: %q", joined, text)
	}
}

func TestWrapOversizedWord(t *testing.T) {
	face := NewFace("", 90)
	maxWidth := 200 // far narrower than the word below

	word := "Supercalifragilisticexpialidocious"
	lines := Wrap(face, "tiny "+word+" tail", maxWidth)

	found := false
	for _, line := range lines {
		if line == word {
			found = true
		}
	}
	if !found {
		t.Errorf("Oversized word should land alone and unsplit, got lines %v", lines)
	}
}

func TestRenderFrameVerticalCentering(t *testing.T) {
	face := NewFace("", 90)
	r := NewRenderer(face)

	w, h := 1080, 1920
	img := r.RenderFrame("Hello world", w, h, 80, 20)

	top, bottom := inkRows(img)
	if top < 0 {
		t.Fatal("Frame contains no text ink")
	}

	inkH := bottom - top + 1
	wantTop := (h - inkH) / 2
	if diff := abs(top - wantTop); diff > 3 {
		t.Errorf("Text block not vertically centered: ink starts at %d, expected ~%d", top, wantTop)
	}

	// A single short line must not wrap: its height stays well under two
	// stacked lines of this font size.
	if inkH > 2*90 {
		t.Errorf("Expected a single text line, ink height %d suggests wrapping", inkH)
	}
}

func TestNewFaceFallback(t *testing.T) {
	face := NewFace("/nonexistent/definitely-missing.ttf", 90)
	if face == nil {
		t.Fatal("NewFace must always return a usable face")
	}
	if w := LineWidth(face, "Hello"); w <= 0 {
		t.Errorf("Fallback face measures %dpx for non-empty text", w)
	}
}

func TestQRFrame(t *testing.T) {
	img, err := QRFrame("https://example.com", 1080, 1920, 80)
	if err != nil {
		t.Fatalf("QRFrame failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1080 || b.Dy() != 1920 {
		t.Errorf("Expected 1080x1920 frame, got %dx%d", b.Dx(), b.Dy())
	}

	// The code tile sits centered on the canvas: its area holds light pixels.
	c := img.RGBAAt(540, 960)
	if c.R == 0 && c.G == 0 && c.B == 0 {
		t.Log("center pixel is dark, checking tile corner instead")
		side := 1080 - 2*80
		corner := img.RGBAAt((1080-side)/2+4, (1920-side)/2+4)
		if corner.R == 0 && corner.G == 0 && corner.B == 0 {
			t.Error("QR tile area appears empty")
		}
	}
}

// inkRows returns the first and last image row containing non-background
// pixels, or (-1, -1) when the frame is blank.
func inkRows(img *image.RGBA) (int, int) {
	b := img.Bounds()
	top, bottom := -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 0 || c.G > 0 || c.B > 0 {
				if top < 0 {
					top = y
				}
				bottom = y
				break
			}
		}
	}
	return top, bottom
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
