package port

import "sortline/internal/domain/entity"

// FrameSource источник кадров. Принадлежит циклу зрения целиком.
type FrameSource interface {
	// Read возвращает следующий кадр; false означает пропуск итерации
	Read() (entity.Frame, bool)

	// Close освобождает устройство
	Close() error
}

// FiniteSource источник с концом потока (запись кадров)
type FiniteSource interface {
	FrameSource

	// Exhausted сообщает, что кадров больше не будет
	Exhausted() bool
}

// CameraOpener открывает камеру по индексу
type CameraOpener interface {
	Open(index int) (FrameSource, error)
}
