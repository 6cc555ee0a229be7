package render

import (
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

// QRFrame renders a call-to-action cut: a centered QR code for the given link
// on the same canvas as the text frames. The code keeps its standard
// dark-on-light tile so it stays scannable on the dark background.
func QRFrame(link string, w, h, margin int) (*image.RGBA, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	side := w
	if h < side {
		side = h
	}
	side -= 2 * margin
	if side < 21 { // smallest QR version
		side = 21
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	code := q.Image(side)
	target := image.Rect((w-side)/2, (h-side)/2, (w+side)/2, (h+side)/2)
	draw.Draw(img, target, code, code.Bounds().Min, draw.Src)

	return img, nil
}
