package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
)

// Overlay defaults: a 2 pixel green outline.
const (
	DefaultLineColor = "#00FF00"
	DefaultLineWidth = 2
)

// OverlayOptions controls DrawOverlay.
type OverlayOptions struct {
	// LineColor is the "#RRGGBB" outline color. Empty selects
	// DefaultLineColor.
	LineColor string

	// LineWidth is the outline thickness in pixels. Zero or less selects
	// DefaultLineWidth.
	LineWidth int

	// Mask, when set, is tinted with TintColor at TintAlpha.
	Mask      region.Region
	TintColor string
	TintAlpha float64

	// Points are marked with 3x3 dots in PointColor, e.g. the sampler grid.
	Points     []region.Point
	PointColor string
}

// DefaultOverlayOptions returns the outline-only defaults.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		LineColor:  DefaultLineColor,
		LineWidth:  DefaultLineWidth,
		TintColor:  "#0080FF",
		TintAlpha:  0.3,
		PointColor: "#FF0000",
	}
}

// DrawOverlay returns a copy of img with rect outlined. A nil rect leaves the
// copy without an outline, which is how "not found" is rendered.
//
// Mask, points and rect are in 0-based coordinates relative to img.Bounds().Min,
// the same coordinates the segment package produces.
func DrawOverlay(img image.Image, rect *region.Rect, opts OverlayOptions) (*image.NRGBA, error) {
	if opts.LineColor == "" {
		opts.LineColor = DefaultLineColor
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}

	line, err := parseColor(opts.LineColor)
	if err != nil {
		return nil, fmt.Errorf("invalid line color: %w", err)
	}

	dst := imaging.Clone(img)

	if opts.Mask != nil && opts.TintAlpha > 0 {
		tint, err := parseColor(opts.TintColor)
		if err != nil {
			return nil, fmt.Errorf("invalid tint color: %w", err)
		}
		tintMask(dst, opts.Mask, tint, opts.TintAlpha)
	}

	if len(opts.Points) > 0 {
		dot, err := parseColor(opts.PointColor)
		if err != nil {
			return nil, fmt.Errorf("invalid point color: %w", err)
		}
		for _, p := range opts.Points {
			fillBox(dst, p.X-1, p.Y-1, p.X+2, p.Y+2, toNRGBA(dot))
		}
	}

	if rect != nil {
		drawOutline(dst, *rect, opts.LineWidth, toNRGBA(line))
	}

	return dst, nil
}

// drawOutline draws the four sides of r, each width pixels thick and centered
// on the corner coordinates.
func drawOutline(dst *image.NRGBA, r region.Rect, width int, c color.NRGBA) {
	lo := -(width / 2)
	hi := lo + width

	fillBox(dst, r.X1+lo, r.Y1+lo, r.X2+hi, r.Y1+hi, c) // top
	fillBox(dst, r.X1+lo, r.Y2+lo, r.X2+hi, r.Y2+hi, c) // bottom
	fillBox(dst, r.X1+lo, r.Y1+lo, r.X1+hi, r.Y2+hi, c) // left
	fillBox(dst, r.X2+lo, r.Y1+lo, r.X2+hi, r.Y2+hi, c) // right
}

// fillBox paints [x1,x2) x [y1,y2), clipped to dst.
func fillBox(dst *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	box := image.Rect(x1, y1, x2, y2).Intersect(dst.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dst.SetNRGBA(x, y, c)
		}
	}
}

func tintMask(dst *image.NRGBA, mask region.Region, tint colorful.Color, alpha float64) {
	alpha = min(max(alpha, 0), 1)
	b := mask.Bounds().Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !mask.Contains(x, y) {
				continue
			}
			px := dst.NRGBAAt(x, y)
			base := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
			out := toNRGBA(base.BlendRgb(tint, alpha))
			out.A = px.A
			dst.SetNRGBA(x, y, out)
		}
	}
}

// parseColor accepts "#RRGGBB", "RRGGBB" and "#RGB".
func parseColor(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return colorful.Hex(hex)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// RenderMask draws m as a grayscale image: white inside, black outside.
func RenderMask(m *region.Mask) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.Contains(x, y) {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}
