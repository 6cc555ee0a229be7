package render

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Well-known DejaVuSans locations, checked when no explicit font is given.
var defaultFontPaths = []string{
	"DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/DejaVuSans.ttf",
}

// NewFace resolves a font face at the requested pixel size. Resolution order:
// the explicit path, well-known DejaVuSans locations, the embedded Go Regular
// font, and finally the fixed-size basicfont glyph set. Font trouble degrades,
// it never surfaces as an error.
func NewFace(path string, size int) font.Face {
	candidates := defaultFontPaths
	if path != "" {
		candidates = append([]string{path}, candidates...)
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if face := parseFace(data, size); face != nil {
			return face
		}
	}

	if face := parseFace(goregular.TTF, size); face != nil {
		return face
	}
	return basicfont.Face7x13
}

func parseFace(data []byte, size int) font.Face {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}
