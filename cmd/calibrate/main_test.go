package main

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, w, h int, rect image.Rectangle, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestRun_WritesOpenedMask(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mask.png")
	opts := options{
		Input:       writeFrame(t, 100, 80, image.Rect(20, 20, 60, 60), color.NRGBA{G: 255, A: 255}),
		Output:      out,
		Lower:       []int{40, 100, 100},
		Upper:       []int{90, 255, 255},
		Width:       100,
		Height:      80,
		Iterations:  2,
		MinBlobArea: 1500,
	}

	res, err := run(opts)
	require.NoError(t, err)
	require.Equal(t, 1600, res.Pixels)
	require.Len(t, res.Blobs, 1)
	require.Equal(t, 1600, res.Blobs[0].Area)

	mask, err := imaging.Open(out)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 80), mask.Bounds())
	r, _, _, _ := mask.At(40, 40).RGBA()
	require.Equal(t, uint32(0xffff), r)
	r, _, _, _ = mask.At(5, 5).RGBA()
	require.Zero(t, r)
}

func TestRun_ResizesToFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mask.png")
	opts := options{
		Input:  writeFrame(t, 200, 160, image.Rect(40, 40, 120, 120), color.NRGBA{G: 255, A: 255}),
		Output: out,
		Lower:  []int{40, 100, 100},
		Upper:  []int{90, 255, 255},
		Width:  100,
		Height: 80,
	}

	_, err := run(opts)
	require.NoError(t, err)

	mask, err := imaging.Open(out)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 80), mask.Bounds())
}

func TestRun_RejectsBadRange(t *testing.T) {
	cases := map[string][2][]int{
		"short":    {{1, 2}, {90, 255, 255}},
		"inverted": {{100, 100, 100}, {90, 255, 255}},
		"overflow": {{0, 0, 0}, {90, 256, 255}},
		"hue":      {{0, 0, 0}, {200, 255, 255}},
	}
	for name, bounds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(options{Input: "unused.png", Lower: bounds[0], Upper: bounds[1]})
			require.Error(t, err)
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	_, err := run(options{
		Input: filepath.Join(t.TempDir(), "missing.png"),
		Lower: []int{0, 0, 0},
		Upper: []int{179, 255, 255},
	})
	require.Error(t, err)
}
