package region

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidStep is returned when Options.Step is not positive.
var ErrInvalidStep = errors.New("region: step must be positive")

// DefaultStep is the grid spacing used when none is configured.
const DefaultStep = 5

// Status describes how a search ended.
type Status string

const (
	// StatusFound means Result.Rect holds the best rectangle.
	StatusFound Status = "found"

	// StatusEmptyRegion means no sampled point was interior.
	StatusEmptyRegion Status = "empty_region"

	// StatusNoValidRectangle means interior points exist but no candidate
	// boundary validated.
	StatusNoValidRectangle Status = "no_valid_rectangle"
)

// Rect is an axis-aligned rectangle given by its top-left (X1,Y1) and
// bottom-right (X2,Y2) corners, with X1 < X2 and Y1 < Y2.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns X2 - X1.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Area returns Width * Height.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Image converts r to an image.Rectangle with the same corners.
func (r Rect) Image() image.Rectangle { return image.Rect(r.X1, r.Y1, r.X2, r.Y2) }

// Options controls a search.
type Options struct {
	// Step is the grid spacing for sampling and edge validation. Smaller
	// values trace the border more closely and cost much more time.
	Step int

	// Workers is the number of anchor columns searched concurrently. Values
	// below 2 search sequentially. The result does not depend on it unless a
	// budget truncates the search.
	Workers int

	// MaxChecks bounds the number of containment tests. Zero means no limit.
	MaxChecks int64
}

// DefaultOptions returns sequential, unlimited options with DefaultStep.
func DefaultOptions() Options {
	return Options{Step: DefaultStep, Workers: 1}
}

// Result is the outcome of a search.
type Result struct {
	// Rect is the best rectangle, or nil when none was found.
	Rect *Rect `json:"rect"`

	Status      Status `json:"status"`
	Step        int    `json:"step"`
	Extent      Extent `json:"extent"`
	SampleCount int    `json:"sample_count"`

	// Checks is the number of containment tests performed by the search
	// phase.
	Checks int64 `json:"checks"`

	// Truncated is set when the context or MaxChecks stopped the search
	// early. Rect is then the best found so far.
	Truncated bool `json:"truncated"`
}

// Found reports whether a rectangle was found.
func (r *Result) Found() bool { return r.Rect != nil }

// Find samples r and searches for the largest inscribed rectangle.
func Find(ctx context.Context, r Region, opts Options) (*Result, error) {
	if opts.Step <= 0 {
		return nil, ErrInvalidStep
	}
	return FindInSamples(ctx, r, Sample(r, opts.Step), opts)
}

// FindInSamples searches r using a previous Sample result. The samples must
// have been taken from r with opts.Step.
func FindInSamples(ctx context.Context, r Region, samples *Samples, opts Options) (*Result, error) {
	if opts.Step <= 0 {
		return nil, ErrInvalidStep
	}

	res := &Result{
		Status:      StatusEmptyRegion,
		Step:        opts.Step,
		Extent:      samples.Extent,
		SampleCount: len(samples.Points),
	}
	if samples.Empty() {
		return res, nil
	}

	s := &searcher{
		ctx:       ctx,
		region:    r,
		step:      opts.Step,
		ext:       samples.Extent,
		maxChecks: opts.MaxChecks,
	}

	var columns []int
	for x1 := s.ext.MinX; x1 < s.ext.MaxX; x1 += 2 * s.step {
		columns = append(columns, x1)
	}
	found := make([]candidate, len(columns))
	complete := make([]bool, len(columns))

	if opts.Workers < 2 {
		for i, x1 := range columns {
			found[i], complete[i] = s.column(x1)
			if !complete[i] {
				break
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, x1 := range columns {
			i, x1 := i, x1
			g.Go(func() error {
				found[i], complete[i] = s.column(x1)
				return nil
			})
		}
		_ = g.Wait()
	}

	var best candidate
	for i := range columns {
		if found[i].area > best.area {
			best = found[i]
		}
		if !complete[i] {
			res.Truncated = true
		}
	}

	res.Checks = s.total.Load()
	res.Status = StatusNoValidRectangle
	if best.area > 0 {
		rect := best.rect
		res.Rect = &rect
		res.Status = StatusFound
	}
	return res, nil
}

// Inscribed reports whether every point on the boundary of rect, sampled at
// step resolution and including all four corners, is inside r.
func Inscribed(r Region, rect Rect, step int) bool {
	if step <= 0 || rect.X1 >= rect.X2 || rect.Y1 >= rect.Y2 {
		return false
	}
	for px := rect.X1; px < rect.X2; px += step {
		if !r.Contains(px, rect.Y1) || !r.Contains(px, rect.Y2) {
			return false
		}
	}
	for py := rect.Y1; py < rect.Y2; py += step {
		if !r.Contains(rect.X1, py) || !r.Contains(rect.X2, py) {
			return false
		}
	}
	return r.Contains(rect.X2, rect.Y1) && r.Contains(rect.X2, rect.Y2)
}

type candidate struct {
	rect Rect
	area int
}

// searcher holds state shared by all anchor columns of one search.
type searcher struct {
	ctx       context.Context
	region    Region
	step      int
	ext       Extent
	maxChecks int64
	total     atomic.Int64
}

// column searches all anchors with the given x1 in order and returns the best
// rectangle among them. The bool is false when a budget stopped it early.
func (s *searcher) column(x1 int) (candidate, bool) {
	c := &scan{searcher: s}
	var best candidate
	for y1 := s.ext.MinY; y1 < s.ext.MaxY; y1 += 2 * s.step {
		if c.exhausted() {
			return best, false
		}
		if !c.in(x1, y1) {
			continue
		}
		for x2 := s.ext.MaxX; x2 > x1; x2 -= 2 * s.step {
			if !c.in(x2, y1) || !c.row(x1, x2, y1) {
				continue
			}
			y2, ok := c.bottom(x1, y1, x2)
			if !ok {
				continue
			}
			if area := (x2 - x1) * (y2 - y1); area > best.area {
				best = candidate{rect: Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}, area: area}
			}
		}
	}
	c.flush()
	return best, true
}

// scan counts containment tests for a single column.
type scan struct {
	*searcher
	checks int64
}

func (c *scan) in(x, y int) bool {
	c.checks++
	return c.region.Contains(x, y)
}

// row checks (px, y) for px = x1, x1+step, ... below x2.
func (c *scan) row(x1, x2, y int) bool {
	for px := x1; px < x2; px += c.step {
		if !c.in(px, y) {
			return false
		}
	}
	return true
}

// sides checks both vertical edges x1 and x2 from y1 down to below y2.
func (c *scan) sides(x1, x2, y1, y2 int) bool {
	for py := y1; py < y2; py += c.step {
		if !c.in(x1, py) || !c.in(x2, py) {
			return false
		}
	}
	return true
}

// bottom returns the largest y2 on the 2*step ladder from the extent bottom
// for which the rectangle (x1,y1)-(x2,y2) validates.
func (c *scan) bottom(x1, y1, x2 int) (int, bool) {
	for y2 := c.ext.MaxY; y2 > y1; y2 -= 2 * c.step {
		if !c.in(x1, y2) || !c.in(x2, y2) {
			continue
		}
		if !c.sides(x1, x2, y1, y2) || !c.row(x1, x2, y2) {
			continue
		}
		return y2, true
	}
	return 0, false
}

func (c *scan) flush() {
	c.total.Add(c.checks)
	c.checks = 0
}

func (c *scan) exhausted() bool {
	c.flush()
	if c.ctx.Err() != nil {
		return true
	}
	return c.maxChecks > 0 && c.total.Load() >= c.maxChecks
}
