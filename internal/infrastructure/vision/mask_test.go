package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskOpen_RemovesSpeckle(t *testing.T) {
	m := maskWith(40, 40, image.Rect(3, 3, 4, 4), image.Rect(20, 5, 22, 7))
	require.Equal(t, 0, m.Open(2).CountNonZero())
}

func TestMaskOpen_RestoresSquare(t *testing.T) {
	square := image.Rect(10, 10, 20, 20)
	m := maskWith(40, 40, square)

	opened := m.Open(2)
	require.Equal(t, 100, opened.CountNonZero())
	require.Equal(t, m.Pix, opened.Pix)
}

func TestMaskOpen_BorderIsNeutral(t *testing.T) {
	m := maskWith(20, 20, image.Rect(0, 0, 8, 8))
	require.Equal(t, 64, m.Open(2).CountNonZero())
}

func TestMaskOpen_ZeroIterations(t *testing.T) {
	m := maskWith(10, 10, image.Rect(1, 1, 2, 2))
	require.Equal(t, 1, m.Open(0).CountNonZero())
}

func TestMaskAt_OutOfBounds(t *testing.T) {
	m := maskWith(4, 4, image.Rect(0, 0, 4, 4))
	require.Equal(t, uint8(0), m.At(-1, 0))
	require.Equal(t, uint8(0), m.At(4, 0))
	require.Equal(t, uint8(1), m.At(3, 3))
}

func TestMaskImage(t *testing.T) {
	m := maskWith(6, 4, image.Rect(1, 1, 3, 2))
	g := m.Image()
	require.Equal(t, image.Rect(0, 0, 6, 4), g.Bounds())
	require.Equal(t, uint8(255), g.GrayAt(1, 1).Y)
	require.Equal(t, uint8(255), g.GrayAt(2, 1).Y)
	require.Equal(t, uint8(0), g.GrayAt(3, 1).Y)
	require.Equal(t, uint8(0), g.GrayAt(0, 0).Y)
}
