package coretest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/xpanel/engine/assets"
)

// ChromeImages lists every icon the window system loads at init.
var ChromeImages = []string{
	assets.ImageClose,
	assets.ImagePopOut,
	assets.ImageResizeL,
	assets.ImageResizeR,
	assets.ImageKeyboard,
}

// WriteAssets populates a temporary assets directory with every chrome icon
// and the cursor, skipping the names in omit.
func WriteAssets(t testing.TB, omit ...string) string {
	t.Helper()
	dir := t.TempDir()
	skip := map[string]bool{}
	for _, o := range omit {
		skip[o] = true
	}
	for _, name := range ChromeImages {
		if !skip[name] {
			writePNG(t, assets.ImagePath(dir, name), 64)
		}
	}
	if !skip["click.png"] {
		writePNG(t, assets.CursorPath(dir), 32)
	}
	return dir
}

func writePNG(t testing.TB, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < size; i++ {
		img.Set(i, i, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
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
