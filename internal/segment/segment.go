package segment

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	bildseg "github.com/anthonynsimon/bild/segment"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
)

// Mode selects how pixels are classified.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
	ModeColor Mode = "color"
)

// ErrUnknownMode is returned for a Mode other than dark, light or color.
var ErrUnknownMode = errors.New("segment: unknown mode")

// Default classification parameters.
const (
	DefaultThreshold = 50
	DefaultTolerance = 0.15
)

// Options controls segmentation.
type Options struct {
	Mode Mode `json:"mode" yaml:"mode"`

	// Threshold is the 8-bit luminance cut for dark and light modes.
	Threshold uint8 `json:"threshold" yaml:"threshold"`

	// KeyColor is the "#RRGGBB" color matched in color mode.
	KeyColor string `json:"key_color,omitempty" yaml:"key_color"`

	// Tolerance is the maximum L*a*b* distance to KeyColor in color mode.
	// Distances are roughly in [0, 1.5]; identical colors are 0.
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance"`

	// BlurRadius is the Gaussian blur radius applied first. Zero disables it.
	BlurRadius float64 `json:"blur_radius,omitempty" yaml:"blur_radius"`

	// KeepAll keeps every classified pixel instead of the filled largest
	// component.
	KeepAll bool `json:"keep_all,omitempty" yaml:"keep_all"`
}

// DefaultOptions selects dark shapes at the default threshold.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeDark,
		Threshold: DefaultThreshold,
		Tolerance: DefaultTolerance,
	}
}

// ParseMode converts a user supplied mode name. An empty name selects dark.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDark, nil
	case ModeDark, ModeLight, ModeColor:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Stats describes a segmentation.
type Stats struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Classified is the number of pixels that passed classification.
	Classified int `json:"classified_pixels"`

	// Components is the number of 8-connected components among them.
	Components int `json:"components"`

	// Inside is the number of pixels in the final mask.
	Inside int `json:"inside_pixels"`

	// Bounds is the bounding box of the final mask (max exclusive). It is
	// nil for an empty mask.
	Bounds *region.Rect `json:"bounds,omitempty"`
}

// Result holds the mask produced by Segment.
type Result struct {
	Mask  *region.Mask
	Stats Stats
}

// Segment classifies img and returns the resulting region mask.
func Segment(img image.Image, opts Options) (*Result, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	src := img
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(img, opts.BlurRadius)
	}

	var inside []bool
	switch mode {
	case ModeDark, ModeLight:
		inside = classifyLuminance(src, opts.Threshold, mode == ModeDark)
	case ModeColor:
		hex := strings.TrimSpace(opts.KeyColor)
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		key, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid key color %q: %w", opts.KeyColor, err)
		}
		inside = classifyColor(src, key, opts.Tolerance)
	}

	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	stats := Stats{Width: width, Height: height}
	for _, in := range inside {
		if in {
			stats.Classified++
		}
	}

	labels, sizes := label(inside, width, height)
	stats.Components = len(sizes)
	if !opts.KeepAll {
		inside = largest(labels, sizes)
		fillHoles(inside, width, height)
	}

	mask, err := region.NewMask(width, height, inside)
	if err != nil {
		return nil, fmt.Errorf("failed to build mask: %w", err)
	}
	stats.Inside = mask.Count()
	if b := mask.Bounds(); !b.Empty() {
		stats.Bounds = &region.Rect{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y}
	}

	return &Result{Mask: mask, Stats: stats}, nil
}

// classifyLuminance thresholds src with bild and keeps the dark (or light)
// side of threshold. bild marks luminance >= level white.
func classifyLuminance(src image.Image, threshold uint8, dark bool) []bool {
	b := src.Bounds()
	inside := make([]bool, b.Dx()*b.Dy())

	if threshold == 255 {
		if dark {
			for i := range inside {
				inside[i] = true
			}
		}
		return inside
	}

	gray := bildseg.Threshold(src, threshold+1)
	gb := gray.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			white := gray.GrayAt(gb.Min.X+x, gb.Min.Y+y).Y == 0xFF
			_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			inside[y*b.Dx()+x] = a != 0 && white != dark
		}
	}
	return inside
}

func classifyColor(src image.Image, key colorful.Color, tolerance float64) []bool {
	b := src.Bounds()
	inside := make([]bool, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c, ok := colorful.MakeColor(src.At(b.Min.X+x, b.Min.Y+y))
			inside[y*b.Dx()+x] = ok && c.DistanceLab(key) <= tolerance
		}
	}
	return inside
}
