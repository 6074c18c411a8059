package imaging

import (
	"image/color"
	"testing"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
)

func TestDrawOverlay_Outline(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	rect := &region.Rect{X1: 20, Y1: 30, X2: 70, Y2: 80}

	out, err := DrawOverlay(img, rect, DefaultOverlayOptions())
	if err != nil {
		t.Fatalf("DrawOverlay failed: %v", err)
	}

	green := []struct{ x, y int }{
		{20, 30}, {45, 30}, {70, 30}, // top
		{45, 80},           // bottom
		{20, 55}, {69, 55}, // sides, 2px wide centered on the edge
		{19, 29}, // thickness reaches one pixel outward
	}
	for _, p := range green {
		if r, g, b := rgb8(out.At(p.x, p.y)); r != 0 || g != 255 || b != 0 {
			t.Errorf("pixel (%d,%d): got (%d,%d,%d), want green", p.x, p.y, r, g, b)
		}
	}

	if r, g, b := rgb8(out.At(45, 55)); r != 255 || g != 255 || b != 255 {
		t.Errorf("interior should be untouched, got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := rgb8(img.At(20, 30)); r != 255 || g != 255 || b != 255 {
		t.Error("source image must not be modified")
	}
}

func TestDrawOverlay_NotFound(t *testing.T) {
	img := createPatternImage(40, 40)

	out, err := DrawOverlay(img, nil, DefaultOverlayOptions())
	if err != nil {
		t.Fatalf("DrawOverlay failed: %v", err)
	}

	for _, p := range []struct{ x, y int }{{5, 5}, {30, 5}, {5, 30}, {30, 30}} {
		wr, wg, wb := rgb8(img.At(p.x, p.y))
		gr, gg, gb := rgb8(out.At(p.x, p.y))
		if wr != gr || wg != gg || wb != gb {
			t.Errorf("pixel (%d,%d) changed without a rectangle", p.x, p.y)
		}
	}
}

func TestDrawOverlay_ClipsAtBorder(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)
	rect := &region.Rect{X1: 0, Y1: 0, X2: 49, Y2: 49}

	out, err := DrawOverlay(img, rect, OverlayOptions{LineWidth: 5})
	if err != nil {
		t.Fatalf("DrawOverlay failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("size: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if _, g, _ := rgb8(out.At(0, 0)); g != 255 {
		t.Error("corner should be outlined")
	}
}

func TestDrawOverlay_MaskTintAndPoints(t *testing.T) {
	img := createInMemoryImage(60, 60, color.White)
	mask := region.MaskFromFunc(60, 60, func(x, y int) bool {
		return x >= 10 && x < 50 && y >= 10 && y < 50
	})

	opts := DefaultOverlayOptions()
	opts.Mask = mask
	opts.TintColor = "#000000"
	opts.TintAlpha = 0.5
	opts.Points = []region.Point{{X: 30, Y: 30}}

	out, err := DrawOverlay(img, nil, opts)
	if err != nil {
		t.Fatalf("DrawOverlay failed: %v", err)
	}

	if r, _, _ := rgb8(out.At(15, 15)); r < 120 || r > 135 {
		t.Errorf("tinted pixel: got R=%d, want about 128", r)
	}
	if r, _, _ := rgb8(out.At(5, 5)); r != 255 {
		t.Errorf("outside mask: got R=%d, want 255", r)
	}
	if r, g, b := rgb8(out.At(31, 29)); r != 255 || g != 0 || b != 0 {
		t.Errorf("point marker: got (%d,%d,%d), want red", r, g, b)
	}
}

func TestDrawOverlay_InvalidColor(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	rect := &region.Rect{X1: 1, Y1: 1, X2: 8, Y2: 8}

	if _, err := DrawOverlay(img, rect, OverlayOptions{LineColor: "#GG0000"}); err == nil {
		t.Error("expected error for invalid line color")
	}

	opts := DefaultOverlayOptions()
	opts.Mask = region.MaskFromFunc(10, 10, func(x, y int) bool { return true })
	opts.TintColor = "nope"
	if _, err := DrawOverlay(img, rect, opts); err == nil {
		t.Error("expected error for invalid tint color")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#00FF00", 0, 255, 0, false},
		{"ff8000", 255, 128, 0, false},
		{"#fff", 255, 255, 255, false},
		{"", 0, 0, 0, true},
		{"#GGHHII", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := toNRGBA(c)
			if got.R != tt.r || got.G != tt.g || got.B != tt.b {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", got.R, got.G, got.B, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRenderMask(t *testing.T) {
	mask := region.MaskFromFunc(30, 20, func(x, y int) bool {
		return x >= 5 && x < 15 && y >= 2 && y < 8
	})

	img := RenderMask(mask)
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("size: got %dx%d, want 30x20", b.Dx(), b.Dy())
	}
	if got := img.GrayAt(5, 2).Y; got != 255 {
		t.Errorf("inside pixel: got %d, want 255", got)
	}
	if got := img.GrayAt(15, 2).Y; got != 0 {
		t.Errorf("outside pixel: got %d, want 0", got)
	}

	empty := RenderMask(region.MaskFromFunc(4, 4, func(x, y int) bool { return false }))
	if got := empty.GrayAt(1, 1).Y; got != 0 {
		t.Errorf("empty mask pixel: got %d, want 0", got)
	}
}
