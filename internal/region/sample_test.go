package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSample_FullSquare(t *testing.T) {
	m := rectMask(100, 100, 0, 0, 100, 100)

	s := Sample(m, 5)

	require.False(t, s.Empty())
	require.Equal(t, 5, s.Step)
	require.Len(t, s.Points, 20*20)
	require.Equal(t, Extent{MinX: 0, MinY: 0, MaxX: 95, MaxY: 95}, s.Extent)
}

func TestSample_ColumnMajorOrder(t *testing.T) {
	m := rectMask(20, 20, 0, 0, 20, 20)

	s := Sample(m, 10)

	require.Equal(t, []Point{{0, 0}, {0, 10}, {10, 0}, {10, 10}}, s.Points)
}

func TestSample_StartsAtBoundsMin(t *testing.T) {
	m := rectMask(100, 100, 13, 27, 60, 70)

	s := Sample(m, 5)

	require.Equal(t, 13, s.Extent.MinX)
	require.Equal(t, 27, s.Extent.MinY)
	require.Equal(t, 58, s.Extent.MaxX)
	require.Equal(t, 67, s.Extent.MaxY)
}

func TestSample_ExtentGap(t *testing.T) {
	// The border at 12 falls between grid lines 10 and 15.
	m := rectMask(30, 30, 0, 0, 13, 13)

	s := Sample(m, 5)

	require.Equal(t, 10, s.Extent.MaxX)
	require.Equal(t, 10, s.Extent.MaxY)
	require.Equal(t, 13, m.Bounds().Max.X)
}

func TestSample_Empty(t *testing.T) {
	m := MaskFromFunc(40, 40, func(x, y int) bool { return false })

	s := Sample(m, 5)

	require.True(t, s.Empty())
	require.Empty(t, s.Points)
}

func TestSample_NonPositiveStep(t *testing.T) {
	m := rectMask(40, 40, 0, 0, 40, 40)

	require.True(t, Sample(m, 0).Empty())
	require.True(t, Sample(m, -3).Empty())
}

func TestSample_Holes(t *testing.T) {
	// Donut: sampled points in the hole are skipped but the extent still
	// spans the ring.
	m := MaskFromFunc(100, 100, func(x, y int) bool {
		inOuter := x >= 10 && x < 90 && y >= 10 && y < 90
		inHole := x >= 30 && x < 70 && y >= 30 && y < 70
		return inOuter && !inHole
	})

	s := Sample(m, 10)

	for _, p := range s.Points {
		require.True(t, m.Contains(p.X, p.Y), "point %v", p)
	}
	require.Equal(t, Extent{MinX: 10, MinY: 10, MaxX: 80, MaxY: 80}, s.Extent)
	require.Len(t, s.Points, 8*8-4*4)
}
