package effects

import (
	"image"
	"image/draw"
	"math/rand"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/quickcuts/internal/config"
)

type Effect interface {
	Apply(img *image.RGBA, params config.SegmentParams) *image.RGBA
}

// ZoomSource yields the zoom factor for a cut index. The default is random
// jitter; storyboards and tests install deterministic sources.
type ZoomSource func(cutIndex int) float64

// RandomZoomSource draws uniformly from [min, max], seeded per cut index so
// parallel renders stay independent.
func RandomZoomSource(min, max float64) ZoomSource {
	return func(cutIndex int) float64 {
		r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(cutIndex*99)))
		return min + r.Float64()*(max-min)
	}
}

func FixedZoomSource(factor float64) ZoomSource {
	return func(int) float64 {
		return factor
	}
}

// ZoomEffect fakes camera motion on a still frame: upscale then center-crop
// back to the original canvas.
type ZoomEffect struct {
	Source ZoomSource
}

func NewZoomEffect(src ZoomSource) *ZoomEffect {
	return &ZoomEffect{Source: src}
}

func (e *ZoomEffect) Apply(img *image.RGBA, p config.SegmentParams) *image.RGBA {
	factor := p.Zoom
	if factor == 0 && e.Source != nil {
		factor = e.Source(p.CutIndex)
	}
	return ApplyZoom(img, factor, p.Width, p.Height)
}

// ApplyZoom scales the frame uniformly by factor with Catmull-Rom resampling
// and center-crops back to exactly w×h. A factor of 1.0 or below is a no-op:
// the input buffer is returned untouched.
func ApplyZoom(img *image.RGBA, factor float64, w, h int) *image.RGBA {
	if factor <= 1.0 {
		return img
	}

	scaledW := int(float64(w) * factor)
	scaledH := int(float64(h) * factor)
	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	cropX := (scaledW - w) / 2
	cropY := (scaledH - h) / 2
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), scaled, image.Pt(cropX, cropY), draw.Src)
	return out
}
