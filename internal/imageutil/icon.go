package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUndecodable reports input that no registered image decoder accepts.
var ErrUndecodable = errors.New("image not decodable")

// Result describes a normalized image.
type Result struct {
	Format string
	Width  int
	Height int
	Scaled bool
	PNG    []byte
}

// NormalizePNG decodes r in any registered format and re-encodes it as PNG.
// Images whose longer side exceeds maxSize are downscaled, keeping the aspect
// ratio. A maxSize of zero or less disables scaling.
func NormalizePNG(r io.Reader, maxSize int) (Result, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := img.Bounds()
	w, h := Fit(bounds.Dx(), bounds.Dy(), maxSize)
	result := Result{Format: format, Width: w, Height: h}

	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		result.Scaled = true
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode png: %w", err)
	}
	result.PNG = buf.Bytes()
	return result, nil
}

// Fit returns the dimensions of a w x h image scaled so its longer side is at
// most maxSize. Dimensions never drop below one pixel.
func Fit(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		nh := h * maxSize / w
		if nh < 1 {
			nh = 1
		}
		return maxSize, nh
	}
	nw := w * maxSize / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSize
}
