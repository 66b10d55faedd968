package port

import (
	"image"

	"sortline/internal/domain/entity"
)

// FrameAnnotator рисует линию и найденные области для живого видео
type FrameAnnotator interface {
	Annotate(img image.Image, line entity.TriggerLine, found []ClassBlobs, fired bool) image.Image
}
