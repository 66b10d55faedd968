package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobCenter(t *testing.T) {
	b := Blob{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := b.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestBlobCX_FloorDivision(t *testing.T) {
	require.Equal(t, 330, Blob{X: 310, Width: 40}.CX())
	require.Equal(t, 312, Blob{X: 310, Width: 5}.CX())
}

func TestNewBlob(t *testing.T) {
	b := NewBlob(image.Rect(5, 6, 45, 66), 2400)
	require.Equal(t, Blob{X: 5, Y: 6, Width: 40, Height: 60, Area: 2400}, b)
	require.Equal(t, image.Rect(5, 6, 45, 66), b.Rect())
}

func TestBlobLess(t *testing.T) {
	top := Blob{X: 100, Y: 10}
	left := Blob{X: 5, Y: 50}
	right := Blob{X: 50, Y: 50}
	require.True(t, top.Less(left))
	require.True(t, left.Less(right))
	require.False(t, right.Less(left))
}
