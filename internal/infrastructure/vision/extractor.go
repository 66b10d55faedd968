//go:build !gocv
// +build !gocv

package vision

import (
	"github.com/pkg/errors"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// Extractor сегментация и выделение областей на чистом Go
type Extractor struct {
	MinArea    int // площадь, не превышающая порог, отбрасывается
	Iterations int // число эрозий и дилатаций
}

// NewExtractor создаёт экстрактор с порогом площади и числом итераций размыкания
func NewExtractor(minArea, iterations int) *Extractor {
	return &Extractor{MinArea: minArea, Iterations: iterations}
}

// Extract конвертирует кадр в HSV один раз и строит маску на каждый класс
func (e *Extractor) Extract(frame entity.Frame, classes entity.ColorTable) ([]port.ClassBlobs, error) {
	if frame.Image == nil {
		return nil, errors.Errorf("frame %d has no image", frame.Seq)
	}
	if frame.Image.Bounds().Empty() {
		return nil, errors.Errorf("frame %d is empty", frame.Seq)
	}

	hsv := NewHSVImage(frame.Image)
	out := make([]port.ClassBlobs, 0, len(classes))
	for _, c := range classes {
		mask := hsv.InRange(c.Range).Open(e.Iterations)
		out = append(out, port.ClassBlobs{Class: c, Blobs: mask.Blobs(e.MinArea)})
	}
	return out, nil
}

var _ port.BlobExtractor = (*Extractor)(nil)
