package port

import "sortline/internal/domain/entity"

// EventHistory последние события и счётчики по меткам
type EventHistory interface {
	Add(ev entity.ClassificationEvent)
	Recent() []entity.ClassificationEvent
	Counts() map[string]int
	Total() int
	// Labels метки, встречавшиеся в сессии, по алфавиту
	Labels() []string
}
