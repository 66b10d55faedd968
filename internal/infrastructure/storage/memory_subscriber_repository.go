package storage

import (
	"context"
	"sort"
	"sync"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков.
// Наружу отдаются только копии: бот и рассылка работают в разных горутинах.
type MemorySubscriberRepository struct {
	mu   sync.RWMutex
	subs map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subs: make(map[int64]*entity.Subscriber),
	}
}

// UpdateState меняет состояние под блокировкой хранилища
func (r *MemorySubscriberRepository) UpdateState(ctx context.Context, userID, chatID int64, state entity.SubscriberState) (*entity.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.getOrCreate(userID, chatID)
	sub.ChatID = chatID
	sub.SetState(state)
	cp := *sub
	return &cp, nil
}

// getOrCreate вызывается под r.mu
func (r *MemorySubscriberRepository) getOrCreate(userID, chatID int64) *entity.Subscriber {
	if sub, exists := r.subs[userID]; exists {
		return sub
	}
	sub := entity.NewSubscriber(userID, chatID)
	r.subs[userID] = sub
	return sub
}

// Active возвращает включённых подписчиков, упорядоченных по ID
func (r *MemorySubscriberRepository) Active(ctx context.Context) ([]*entity.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		if sub.Active() {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
