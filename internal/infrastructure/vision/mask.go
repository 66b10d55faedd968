package vision

import "image"

// Mask бинарная маска кадра, построчно: 1 - объект, 0 - фон
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask создаёт пустую маску
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// At возвращает значение пикселя; за пределами маски - 0
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Set включает пиксель
func (m *Mask) Set(x, y int) {
	m.Pix[y*m.Width+x] = 1
}

// CountNonZero число включённых пикселей
func (m *Mask) CountNonZero() int {
	n := 0
	for _, v := range m.Pix {
		n += int(v)
	}
	return n
}

// Image маска в оттенках серого: 255 - объект, 0 - фон
func (m *Mask) Image() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// Open размыкание: iterations эрозий, затем столько же дилатаций (ядро 3x3).
func (m *Mask) Open(iterations int) *Mask {
	out := m
	for i := 0; i < iterations; i++ {
		out = out.morph(true)
	}
	for i := 0; i < iterations; i++ {
		out = out.morph(false)
	}
	return out
}

// morph один проход прямоугольным ядром 3x3, раздельно по строкам и столбцам.
// Граница нейтральна: пиксели за краем не влияют на результат.
func (m *Mask) morph(erode bool) *Mask {
	w, h := m.Width, m.Height
	tmp := make([]uint8, len(m.Pix))
	for y := 0; y < h; y++ {
		row := m.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			tmp[y*w+x] = pickRow(row, x, w, erode)
		}
	}

	out := NewMask(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out.Pix[y*w+x] = pickColumn(tmp, x, y, w, h, erode)
		}
	}
	return out
}

func pickRow(row []uint8, x, w int, erode bool) uint8 {
	v := row[x]
	if x > 0 {
		v = combine(v, row[x-1], erode)
	}
	if x < w-1 {
		v = combine(v, row[x+1], erode)
	}
	return v
}

func pickColumn(pix []uint8, x, y, w, h int, erode bool) uint8 {
	v := pix[y*w+x]
	if y > 0 {
		v = combine(v, pix[(y-1)*w+x], erode)
	}
	if y < h-1 {
		v = combine(v, pix[(y+1)*w+x], erode)
	}
	return v
}

func combine(a, b uint8, erode bool) uint8 {
	if erode {
		return a & b
	}
	return a | b
}
