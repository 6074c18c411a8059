package segment

import "github.com/ironsheep/inscribed-rect-mcp/internal/region"

// label assigns 8-connected component labels to the inside cells. Label 0 is
// background; component i has label i+1 and sizes[i] cells.
func label(inside []bool, width, height int) ([]int32, []int) {
	labels := make([]int32, len(inside))
	var sizes []int
	var stack []region.Point

	for start, in := range inside {
		if !in || labels[start] != 0 {
			continue
		}
		id := int32(len(sizes) + 1)
		size := 0
		stack = append(stack[:0], region.Point{X: start % width, Y: start / width})
		labels[start] = id

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := p.X+dx, p.Y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					i := ny*width + nx
					if inside[i] && labels[i] == 0 {
						labels[i] = id
						stack = append(stack, region.Point{X: nx, Y: ny})
					}
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}

// largest returns a grid holding only the biggest component. Ties keep the
// component found first in row-major order.
func largest(labels []int32, sizes []int) []bool {
	out := make([]bool, len(labels))
	if len(sizes) == 0 {
		return out
	}
	best := 0
	for i, n := range sizes {
		if n > sizes[best] {
			best = i
		}
	}
	id := int32(best + 1)
	for i, l := range labels {
		out[i] = l == id
	}
	return out
}

// fillHoles marks every outside cell that is not 4-connected to the grid
// border as inside.
func fillHoles(inside []bool, width, height int) {
	reached := make([]bool, len(inside))
	var stack []int

	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		i := y*width + x
		if inside[i] || reached[i] {
			return
		}
		reached[i] = true
		stack = append(stack, i)
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		push(x+1, y)
		push(x-1, y)
		push(x, y+1)
		push(x, y-1)
	}

	for i := range inside {
		if !reached[i] {
			inside[i] = true
		}
	}
}
