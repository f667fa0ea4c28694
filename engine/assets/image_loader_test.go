package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, ImagePath(dir, ImageClose), 64, 64)

	img, err := LoadImage(dir, ImageClose)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if img.Stride != 64*4 {
		t.Errorf("stride = %d, want %d", img.Stride, 64*4)
	}
	if got := img.RGBAAt(3, 3); got.R != 255 || got.A != 255 {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(t.TempDir(), ImagePopOut); err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestLoadCursorScalesDown(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, CursorPath(dir), 128, 64)

	img, err := LoadCursor(dir)
	if err != nil {
		t.Fatalf("LoadCursor: %v", err)
	}
	if img.Bounds().Dx() != CursorSize || img.Bounds().Dy() != CursorSize/2 {
		t.Errorf("cursor bounds = %v", img.Bounds())
	}
}

func TestLoadCursorKeepsSmall(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, CursorPath(dir), 16, 16)

	img, err := LoadCursor(dir)
	if err != nil {
		t.Fatalf("LoadCursor: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("cursor width = %d, want 16", img.Bounds().Dx())
	}
}
