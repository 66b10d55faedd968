package port

import "sortline/internal/domain/entity"

// ClassBlobs области одного класса цвета на кадре
type ClassBlobs struct {
	Class entity.ColorClass
	Blobs []entity.Blob
}

// BlobExtractor сегментирует кадр по HSV и выделяет области
type BlobExtractor interface {
	// Extract возвращает области для каждого класса в порядке таблицы.
	// Области внутри класса упорядочены сверху вниз, слева направо.
	Extract(frame entity.Frame, classes entity.ColorTable) ([]ClassBlobs, error)
}
