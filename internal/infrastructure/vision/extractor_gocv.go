//go:build gocv
// +build gocv

package vision

import (
	"image"
	"sort"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// Extractor сегментация и выделение областей через OpenCV
type Extractor struct {
	MinArea    int
	Iterations int
}

// NewExtractor создаёт экстрактор с порогом площади и числом итераций размыкания
func NewExtractor(minArea, iterations int) *Extractor {
	return &Extractor{MinArea: minArea, Iterations: iterations}
}

// Extract строит маску InRange на каждый класс, размыкает её и ищет внешние контуры
func (e *Extractor) Extract(frame entity.Frame, classes entity.ColorTable) ([]port.ClassBlobs, error) {
	if frame.Image == nil {
		return nil, errors.Errorf("frame %d has no image", frame.Seq)
	}

	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d to mat", frame.Seq)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.Errorf("frame %d is empty", frame.Seq)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	out := make([]port.ClassBlobs, 0, len(classes))
	for _, c := range classes {
		blobs := e.extractClass(hsv, kernel, c.Range)
		out = append(out, port.ClassBlobs{Class: c, Blobs: blobs})
	}
	return out, nil
}

func (e *Extractor) extractClass(hsv, kernel gocv.Mat, r entity.HSVRange) []entity.Blob {
	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(float64(r.Lower.H), float64(r.Lower.S), float64(r.Lower.V), 0)
	upper := gocv.NewScalar(float64(r.Upper.H), float64(r.Upper.S), float64(r.Upper.V), 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	// Удаляем шум: сначала эрозия, затем дилатация.
	for i := 0; i < e.Iterations; i++ {
		gocv.Erode(mask, &mask, kernel)
	}
	for i := 0; i < e.Iterations; i++ {
		gocv.Dilate(mask, &mask, kernel)
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	blobs := make([]entity.Blob, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area <= float64(e.MinArea) {
			continue
		}
		blobs = append(blobs, entity.NewBlob(gocv.BoundingRect(c), int(area)))
	}

	sort.SliceStable(blobs, func(i, j int) bool { return blobs[i].Less(blobs[j]) })
	return blobs
}

var _ port.BlobExtractor = (*Extractor)(nil)
