//go:build gocv
// +build gocv

package vision

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// CameraOpener открывает камеру через OpenCV и приводит кадры к размеру сессии
type CameraOpener struct {
	Width  int
	Height int
}

// NewCameraOpener создаёт открыватель камеры с фиксированным размером кадра
func NewCameraOpener(width, height int) *CameraOpener {
	return &CameraOpener{Width: width, Height: height}
}

// Open открывает устройство по индексу
func (o *CameraOpener) Open(index int) (port.FrameSource, error) {
	webcam, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, errors.Wrapf(err, "open camera %d", index)
	}
	if !webcam.IsOpened() {
		webcam.Close()
		return nil, errors.Errorf("camera %d is not available", index)
	}
	return &camera{
		webcam: webcam,
		img:    gocv.NewMat(),
		size:   image.Pt(o.Width, o.Height),
	}, nil
}

type camera struct {
	webcam *gocv.VideoCapture
	img    gocv.Mat
	size   image.Point
	seq    atomic.Int64
}

// Read читает кадр; пустой или нечитаемый кадр - пропуск итерации
func (c *camera) Read() (entity.Frame, bool) {
	if ok := c.webcam.Read(&c.img); !ok || c.img.Empty() {
		return entity.Frame{}, false
	}
	at := time.Now()

	src := c.img
	if c.img.Cols() != c.size.X || c.img.Rows() != c.size.Y {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(c.img, &resized, c.size, 0, 0, gocv.InterpolationLinear)
		src = resized
	}

	img, err := src.ToImage()
	if err != nil {
		return entity.Frame{}, false
	}
	return entity.Frame{Seq: c.seq.Add(1), Image: img, CapturedAt: at}, true
}

func (c *camera) Close() error {
	c.img.Close()
	return c.webcam.Close()
}

var _ port.CameraOpener = (*CameraOpener)(nil)
