package region

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

// rectMask returns a width x height mask whose inside cells are [x1,x2) x [y1,y2).
func rectMask(width, height, x1, y1, x2, y2 int) *Mask {
	return MaskFromFunc(width, height, func(x, y int) bool {
		return x >= x1 && x < x2 && y >= y1 && y < y2
	})
}

func TestNewMask_SizeMismatch(t *testing.T) {
	_, err := NewMask(10, 10, make([]bool, 99))
	require.Error(t, err)

	_, err = NewMask(-1, 10, nil)
	require.Error(t, err)
}

func TestMask_Bounds(t *testing.T) {
	m := rectMask(100, 80, 20, 10, 60, 50)

	require.Equal(t, image.Rect(20, 10, 60, 50), m.Bounds())
	require.Equal(t, 40*40, m.Count())
	require.Equal(t, 100, m.Width())
	require.Equal(t, 80, m.Height())
}

func TestMask_EmptyBounds(t *testing.T) {
	m := MaskFromFunc(50, 50, func(x, y int) bool { return false })

	require.True(t, m.Bounds().Empty())
	require.Zero(t, m.Count())
}

func TestMask_ContainsOutOfBounds(t *testing.T) {
	m := MaskFromFunc(10, 10, func(x, y int) bool { return true })

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, true},
		{"last cell", 9, 9, true},
		{"negative x", -1, 5, false},
		{"negative y", 5, -1, false},
		{"x at width", 10, 5, false},
		{"y at height", 5, 10, false},
		{"far away", 1000, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.Contains(tt.x, tt.y))
		})
	}
}

func TestMask_ZeroSize(t *testing.T) {
	m, err := NewMask(0, 0, nil)
	require.NoError(t, err)
	require.False(t, m.Contains(0, 0))
	require.True(t, m.Bounds().Empty())
}

func TestMaskFromFunc_NegativeSizePanics(t *testing.T) {
	inside := func(x, y int) bool { return true }

	require.PanicsWithValue(t, "region: negative mask size -1x5", func() { MaskFromFunc(-1, 5, inside) })
	require.PanicsWithValue(t, "region: negative mask size -2x-3", func() { MaskFromFunc(-2, -3, inside) })

	m := MaskFromFunc(0, 0, inside)
	require.NotNil(t, m)
	require.False(t, m.Contains(0, 0))
	require.True(t, m.Bounds().Empty())
}
