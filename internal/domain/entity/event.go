package entity

import (
	"image"
	"time"

	"github.com/google/uuid"
)

const (
	MinZone = 1
	MaxZone = 3
)

// ValidZone проверяет номер зоны
func ValidZone(zone int) bool {
	return zone >= MinZone && zone <= MaxZone
}

// Frame один кадр камеры. Не хранится дольше итерации цикла.
type Frame struct {
	Seq        int64
	Image      image.Image
	CapturedAt time.Time
}

// TriggerLine вертикальная линия срабатывания с допуском ±Offset
type TriggerLine struct {
	X      int
	Offset int
}

// Contains строгая проверка попадания центра в полосу
func (l TriggerLine) Contains(cx int) bool {
	return l.X-l.Offset < cx && cx < l.X+l.Offset
}

// ClassificationEvent результат классификации одного объекта
type ClassificationEvent struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	Measurement int       `json:"measurement"` // высота объекта в пикселях
	Zone        int       `json:"zone"`
	CX          int       `json:"cx"`
	FrameSeq    int64     `json:"frame_seq"`
	At          time.Time `json:"at"`
}

// FrameNotification кадр с разметкой для живого видео
type FrameNotification struct {
	Seq    int64
	Image  image.Image
	Events int // сколько событий дал кадр
}
