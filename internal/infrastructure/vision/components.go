package vision

import (
	"image"
	"sort"

	"sortline/internal/domain/entity"
)

// Blobs выделяет 8-связные области маски площадью строго больше minArea.
// Площадь - число пикселей области.
func (m *Mask) Blobs(minArea int) []entity.Blob {
	visited := make([]uint8, len(m.Pix))
	blobs := make([]entity.Blob, 0)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			if m.Pix[idx] == 0 || visited[idx] != 0 {
				continue
			}
			rect, area := m.floodFill(visited, x, y)
			if area <= minArea {
				continue
			}
			blobs = append(blobs, entity.NewBlob(rect, area))
		}
	}

	sort.SliceStable(blobs, func(i, j int) bool { return blobs[i].Less(blobs[j]) })
	return blobs
}

// floodFill итеративная заливка от стартовой точки, возвращает рамку и площадь
func (m *Mask) floodFill(visited []uint8, startX, startY int) (image.Rectangle, int) {
	minX, minY := startX, startY
	maxX, maxY := startX+1, startY+1
	area := 0

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= m.Width || p.Y < 0 || p.Y >= m.Height {
			continue
		}
		idx := p.Y*m.Width + p.X
		if visited[idx] != 0 || m.Pix[idx] == 0 {
			continue
		}
		visited[idx] = 1
		area++

		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X+1)
		maxY = max(maxY, p.Y+1)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return image.Rect(minX, minY, maxX, maxY), area
}
