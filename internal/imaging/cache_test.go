package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeShapeImage writes a white PNG with a black [x1,x2) x [y1,y2) block and
// returns its path inside a per-test directory.
func writeShapeImage(t *testing.T, name string, width, height, x1, y1, x2, y2 int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if x >= x1 && x < x2 && y >= y1 && y < y2 {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestCache_Load(t *testing.T) {
	cache := NewCache()
	path := writeShapeImage(t, "shape.png", 120, 80, 10, 10, 50, 50)

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 120x80", b.Dx(), b.Dy())
	}

	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestCache_Load_NonExistent(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestCache_Load_InvalidImage(t *testing.T) {
	cache := NewCache()
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Error("failed decode must not be cached")
	}
}

func TestCache_EvictAndClear(t *testing.T) {
	cache := NewCache()
	a := writeShapeImage(t, "a.png", 20, 20, 0, 0, 10, 10)
	b := writeShapeImage(t, "b.png", 20, 20, 0, 0, 10, 10)

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	cache.Evict(a)
	if cache.Len() != 1 {
		t.Errorf("after Evict: got %d images, want 1", cache.Len())
	}

	cache.Evict("/nonexistent/path")
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: got %d images, want 0", cache.Len())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache()
	path := writeShapeImage(t, "shared.png", 50, 50, 5, 5, 45, 45)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	cache := NewCache()
	path := writeShapeImage(t, "info.png", 200, 150, 0, 0, 10, 10)

	info, err := Describe(cache, path)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestDescribe_FormatFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".jpeg", "jpeg"},
		{".gif", "gif"},
		{".webp", "webp"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			// PNG content regardless of extension; decoding sniffs the data.
			path := writeShapeImage(t, "format"+tt.ext, 10, 10, 0, 0, 5, 5)

			info, err := Describe(NewCache(), path)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.ext, info.Format, tt.format)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	cache := NewCache()
	path := writeShapeImage(t, "dims.png", 300, 200, 0, 0, 1, 1)

	dims, err := Dimensions(cache, path)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("got %dx%d, want 300x200", dims.Width, dims.Height)
	}

	if _, err := Dimensions(cache, "/nonexistent/image.png"); err == nil {
		t.Error("Dimensions should fail for non-existent file")
	}
}
