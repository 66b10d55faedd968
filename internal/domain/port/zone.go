package port

import "sortline/internal/domain/entity"

// Classification результат классификатора зон
type Classification struct {
	Label       string
	Measurement int
	Zone        int
}

// ZoneClassifier определяет зону по классу цвета или размеру
type ZoneClassifier interface {
	Classify(class entity.ColorClass, blob entity.Blob) (Classification, error)
}
