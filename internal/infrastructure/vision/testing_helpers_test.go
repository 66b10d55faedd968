package vision

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	orange = color.RGBA{R: 255, G: 165, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
)

type paint struct {
	rect image.Rectangle
	c    color.Color
}

// newFrame рисует прямоугольники на чёрном фоне
func newFrame(w, h int, shapes ...paint) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	for _, s := range shapes {
		draw.Draw(img, s.rect, &image.Uniform{C: s.c}, image.Point{}, draw.Src)
	}
	return img
}

func maskWith(w, h int, rects ...image.Rectangle) *Mask {
	m := NewMask(w, h)
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.Set(x, y)
			}
		}
	}
	return m
}
