// Package report formats inscribed-rectangle results for people and for JSON
// clients.
package report

import (
	"fmt"
	"strings"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
)

// NotFound is the message printed when no rectangle was found.
const NotFound = "No rectangle found"

// Text renders res the way the CLI prints it: two lines with corners and
// metrics, or NotFound. A truncated search adds a third line.
func Text(res *region.Result) string {
	var b strings.Builder
	if !res.Found() {
		b.WriteString(NotFound)
	} else {
		r := res.Rect
		fmt.Fprintf(&b, "Rectangle found: Top-left: (%d, %d), Bottom-right: (%d, %d)\n", r.X1, r.Y1, r.X2, r.Y2)
		fmt.Fprintf(&b, "Width: %d, Height: %d, Area: %d", r.Width(), r.Height(), r.Area())
	}
	if res.Truncated {
		fmt.Fprintf(&b, "\nSearch stopped early after %d checks; result may be suboptimal", res.Checks)
	}
	return b.String()
}

// Corner is a rectangle corner in a Summary.
type Corner struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Summary is the JSON form of a search result. Metrics are derived from the
// corners.
type Summary struct {
	Found       bool          `json:"found"`
	Status      region.Status `json:"status"`
	TopLeft     *Corner       `json:"top_left,omitempty"`
	BottomRight *Corner       `json:"bottom_right,omitempty"`
	Width       int           `json:"width,omitempty"`
	Height      int           `json:"height,omitempty"`
	Area        int           `json:"area,omitempty"`
	Step        int           `json:"step"`
	Extent      region.Extent `json:"sampled_extent"`
	SampleCount int           `json:"sample_count"`
	Checks      int64         `json:"checks"`
	Truncated   bool          `json:"truncated"`
	Message     string        `json:"message"`
}

// Summarize converts res into a Summary.
func Summarize(res *region.Result) *Summary {
	s := &Summary{
		Found:       res.Found(),
		Status:      res.Status,
		Step:        res.Step,
		Extent:      res.Extent,
		SampleCount: res.SampleCount,
		Checks:      res.Checks,
		Truncated:   res.Truncated,
		Message:     Text(res),
	}
	if r := res.Rect; r != nil {
		s.TopLeft = &Corner{X: r.X1, Y: r.Y1}
		s.BottomRight = &Corner{X: r.X2, Y: r.Y2}
		s.Width = r.Width()
		s.Height = r.Height()
		s.Area = r.Area()
	}
	return s
}
