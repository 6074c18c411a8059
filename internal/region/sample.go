package region

// Extent is the inclusive min/max of sampled interior points.
type Extent struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Samples holds the interior points found on a step-spaced grid.
type Samples struct {
	Step   int
	Points []Point
	Extent Extent
}

// Empty reports whether no sampled point was interior.
func (s *Samples) Empty() bool { return len(s.Points) == 0 }

// Sample walks the region bounds in strides of step, column by column, and
// keeps every point for which the region reports containment. Step must be
// positive.
func Sample(r Region, step int) *Samples {
	s := &Samples{Step: step}
	if step <= 0 {
		return s
	}

	b := r.Bounds()
	for x := b.Min.X; x < b.Max.X; x += step {
		for y := b.Min.Y; y < b.Max.Y; y += step {
			if !r.Contains(x, y) {
				continue
			}
			if len(s.Points) == 0 {
				s.Extent = Extent{MinX: x, MinY: y, MaxX: x, MaxY: y}
			} else {
				s.Extent.MinX = min(s.Extent.MinX, x)
				s.Extent.MinY = min(s.Extent.MinY, y)
				s.Extent.MaxX = max(s.Extent.MaxX, x)
				s.Extent.MaxY = max(s.Extent.MaxY, y)
			}
			s.Points = append(s.Points, Point{X: x, Y: y})
		}
	}
	return s
}
