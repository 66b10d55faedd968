package vision

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

var (
	lineIdle  = color.NRGBA{R: 255, A: 255}
	lineFired = color.NRGBA{G: 255, A: 255}
	boxColors = map[int]color.NRGBA{
		1: {R: 255, G: 165, A: 255},
		2: {G: 255, A: 255},
		3: {B: 255, A: 255},
	}
	boxDefault = color.NRGBA{G: 255, A: 255}
)

// Annotate рисует линию срабатывания, рамки областей и имена классов на копии кадра.
// Исходный кадр не меняется. fired подсвечивает линию зелёным.
func Annotate(img image.Image, line entity.TriggerLine, found []port.ClassBlobs, fired bool) *image.NRGBA {
	out := imaging.Clone(img)

	lc, width := lineIdle, 2
	if fired {
		lc, width = lineFired, 5
	}
	b := out.Bounds()
	fillRect(out, image.Rect(line.X-width/2, b.Min.Y, line.X-width/2+width, b.Max.Y), lc)

	for _, cb := range found {
		c, ok := boxColors[cb.Class.Zone]
		if !ok {
			c = boxDefault
		}
		for _, blob := range cb.Blobs {
			strokeRect(out, blob.Rect(), c, 2)
			drawLabel(out, blob.Rect(), cb.Class.Name, c)
		}
	}
	return out
}

// drawLabel пишет имя над рамкой, а если сверху нет места - под ней
func drawLabel(dst *image.NRGBA, r image.Rectangle, label string, c color.NRGBA) {
	if label == "" {
		return
	}
	face := basicfont.Face7x13
	y := r.Min.Y - 4
	if y-face.Ascent < dst.Bounds().Min.Y {
		y = r.Max.Y + face.Ascent + 2
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(r.Min.X, y),
	}
	d.DrawString(label)
}

func strokeRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA, t int) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Annotator реализация port.FrameAnnotator
type Annotator struct{}

// Annotate см. пакетную функцию Annotate
func (Annotator) Annotate(img image.Image, line entity.TriggerLine, found []port.ClassBlobs, fired bool) image.Image {
	return Annotate(img, line, found, fired)
}

var _ port.FrameAnnotator = Annotator{}
