package region

import (
	"fmt"
	"image"
)

// Point represents a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is a containment test over integer grid coordinates.
//
// Contains must return false for coordinates outside the grid and must be
// safe to call concurrently. Bounds is the box (Max exclusive) outside of which
// Contains is always false.
type Region interface {
	Contains(x, y int) bool
	Bounds() image.Rectangle
}

// Mask is a Region backed by a boolean grid. It is immutable after
// construction.
type Mask struct {
	width  int
	height int
	pix    []bool
	bounds image.Rectangle
	count  int
}

// NewMask wraps a row-major grid of width*height cells. The slice is owned by
// the mask afterwards and must not be modified by the caller.
func NewMask(width, height int, pix []bool) (*Mask, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid mask size %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("mask data has %d cells, want %d for %dx%d", len(pix), width*height, width, height)
	}

	m := &Mask{width: width, height: height, pix: pix}
	minX, minY := width, height
	maxX, maxY := -1, -1
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		for x, in := range row {
			if !in {
				continue
			}
			m.count++
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if m.count > 0 {
		m.bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	}
	return m, nil
}

// MaskFromFunc builds a mask by evaluating fn on every cell of a width x height
// grid. It panics if width or height is negative.
func MaskFromFunc(width, height int, fn func(x, y int) bool) *Mask {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("region: negative mask size %dx%d", width, height))
	}
	pix := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = fn(x, y)
		}
	}
	m, err := NewMask(width, height, pix)
	if err != nil {
		panic(err)
	}
	return m
}

// Contains reports whether (x, y) is inside the region. Coordinates outside
// the grid are never inside.
func (m *Mask) Contains(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.pix[y*m.width+x]
}

// Bounds returns the bounding box of the inside cells. It is empty when no
// cell is inside.
func (m *Mask) Bounds() image.Rectangle { return m.bounds }

// Width returns the grid width.
func (m *Mask) Width() int { return m.width }

// Height returns the grid height.
func (m *Mask) Height() int { return m.height }

// Count returns the number of inside cells.
func (m *Mask) Count() int { return m.count }
