package entity

import "image"

// Blob представляет связную область маски, прошедшую фильтр площади
type Blob struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
	Area   int // площадь области в пикселях
}

// NewBlob строит Blob из ограничивающего прямоугольника и площади
func NewBlob(rect image.Rectangle, area int) Blob {
	return Blob{
		X:      rect.Min.X,
		Y:      rect.Min.Y,
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Area:   area,
	}
}

// CX возвращает горизонтальный центр области (целочисленное деление)
func (b Blob) CX() int {
	return b.X + b.Width/2
}

// Center возвращает координаты центра области
func (b Blob) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Rect возвращает ограничивающий прямоугольник
func (b Blob) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Less задаёт порядок сверху вниз, затем слева направо
func (b Blob) Less(o Blob) bool {
	if b.Y != o.Y {
		return b.Y < o.Y
	}
	return b.X < o.X
}
