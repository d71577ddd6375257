package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the whole desktop.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// SplitColumns slices a desktop capture into n equal-width sub-images, one
// per simulated monitor. SubImage shares pixels with src, so callers must
// treat the results as read-only.
func SplitColumns(src *image.RGBA, n int) []image.Image {
	if src == nil || n <= 0 {
		return nil
	}
	b := src.Bounds()
	if n > b.Dx() {
		n = b.Dx()
	}
	out := make([]image.Image, 0, n)
	colW := b.Dx() / n
	for i := 0; i < n; i++ {
		x0 := b.Min.X + i*colW
		x1 := x0 + colW
		if i == n-1 {
			x1 = b.Max.X
		}
		out = append(out, src.SubImage(image.Rect(x0, b.Min.Y, x1, b.Max.Y)))
	}
	return out
}
