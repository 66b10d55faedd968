//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"sortline/internal/domain/port"
)

// CameraOpener заглушка камеры для сборки без OpenCV
type CameraOpener struct {
	Width  int
	Height int
}

// NewCameraOpener создаёт заглушку (без OpenCV).
func NewCameraOpener(width, height int) *CameraOpener {
	return &CameraOpener{Width: width, Height: height}
}

// Open возвращает ошибку, если сборка без тега gocv. Используйте REPLAY_DIR.
func (o *CameraOpener) Open(index int) (port.FrameSource, error) {
	_ = index
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.CameraOpener = (*CameraOpener)(nil)
