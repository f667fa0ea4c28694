package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Chrome icon files expected under <assets>/data/images.
const (
	ImageClose    = "close.png"
	ImagePopOut   = "popout.png"
	ImageResizeL  = "resize_l.png"
	ImageResizeR  = "resize_r.png"
	ImageKeyboard = "keyboard.png"
)

// CursorSize is the largest cursor edge hosts accept.
const CursorSize = 32

// ImagePath returns <dir>/data/images/<name>.
func ImagePath(dir, name string) string {
	return filepath.Join(dir, "data", "images", name)
}

// CursorPath returns the click cursor bitmap path under dir.
func CursorPath(dir string) string {
	return filepath.Join(dir, "data", "cursors", "click.png")
}

// LoadImage loads a chrome icon from the assets directory.
func LoadImage(dir, name string) (*image.RGBA, error) {
	return LoadPNG(ImagePath(dir, name))
}

// LoadCursor loads the click cursor, scaled down to CursorSize if needed.
func LoadCursor(dir string) (*image.RGBA, error) {
	img, err := LoadPNG(CursorPath(dir))
	if err != nil {
		return nil, err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= CursorSize && h <= CursorSize {
		return img, nil
	}
	if w >= h {
		return Scale(img, CursorSize, max(1, h*CursorSize/w)), nil
	}
	return Scale(img, max(1, w*CursorSize/h), CursorSize), nil
}

// LoadPNG returns the image as tightly packed RGBA8 (row-major, top-left
// origin, stride == 4*w).
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return imageToRGBA(img), nil
}

// Scale resamples img to w×h.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
