package vision

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"sortline/internal/domain/entity"
)

// HSVImage кадр в 8-битном HSV (H 0..179, S и V 0..255), как в OpenCV
type HSVImage struct {
	Width  int
	Height int
	Pix    []entity.HSV
}

// ToHSV переводит 8-битный RGB в HSV с масштабом OpenCV
func ToHSV(r, g, b uint8) entity.HSV {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()
	hue := int(math.Round(h/2)) % (entity.MaxHue + 1)
	return entity.HSV{
		H: uint8(hue),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// NewHSVImage конвертирует кадр один раз для всех классов
func NewHSVImage(img image.Image) *HSVImage {
	b := img.Bounds()
	out := &HSVImage{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]entity.HSV, b.Dx()*b.Dy()),
	}

	switch src := img.(type) {
	case *image.RGBA:
		out.fill8(src.Pix, src.Stride, b)
	case *image.NRGBA:
		out.fill8(src.Pix, src.Stride, b)
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				out.Pix[i] = ToHSV(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
				i++
			}
		}
	}
	return out
}

// fill8 быстрый путь для 4-байтовых форматов. Альфа игнорируется.
func (h *HSVImage) fill8(pix []uint8, stride int, b image.Rectangle) {
	i := 0
	for y := 0; y < b.Dy(); y++ {
		row := pix[y*stride:]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4:]
			h.Pix[i] = ToHSV(p[0], p[1], p[2])
			i++
		}
	}
}

// InRange строит маску пикселей, попавших в диапазон
func (h *HSVImage) InRange(r entity.HSVRange) *Mask {
	m := NewMask(h.Width, h.Height)
	for i, p := range h.Pix {
		if r.Contains(p) {
			m.Pix[i] = 1
		}
	}
	return m
}
