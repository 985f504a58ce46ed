package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	return img
}

func TestNormalizePNGFromJPEGDownscales(t *testing.T) {
	var src bytes.Buffer
	if err := jpeg.Encode(&src, solid(512, 256), nil); err != nil {
		t.Fatal(err)
	}

	res, err := NormalizePNG(&src, 128)
	if err != nil {
		t.Fatalf("NormalizePNG: %v", err)
	}
	if res.Format != "jpeg" || !res.Scaled || res.Width != 128 || res.Height != 64 {
		t.Fatalf("unexpected result %+v", res)
	}
	decoded, err := png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("output is not png: %v", err)
	}
	if decoded.Bounds().Dx() != 128 || decoded.Bounds().Dy() != 64 {
		t.Fatalf("unexpected bounds %v", decoded.Bounds())
	}
}

func TestNormalizePNGFromBMPKeepsSize(t *testing.T) {
	var src bytes.Buffer
	if err := bmp.Encode(&src, solid(32, 48)); err != nil {
		t.Fatal(err)
	}
	res, err := NormalizePNG(&src, 256)
	if err != nil {
		t.Fatalf("NormalizePNG: %v", err)
	}
	if res.Format != "bmp" || res.Scaled || res.Width != 32 || res.Height != 48 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestNormalizePNGRejectsGarbage(t *testing.T) {
	_, err := NormalizePNG(bytes.NewReader([]byte("definitely not an image")), 64)
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := Fit(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Fatalf("Fit(%d,%d,%d) = %d,%d want %d,%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}
