package port

import (
	"context"

	"sortline/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков.
// Возвращаемые подписчики - копии, менять их можно только через UpdateState.
type SubscriberRepository interface {
	// UpdateState атомарно меняет состояние подписчика, создавая его при необходимости
	UpdateState(ctx context.Context, userID, chatID int64, state entity.SubscriberState) (*entity.Subscriber, error)

	// Active возвращает чаты, которым нужно отправлять события
	Active(ctx context.Context) ([]*entity.Subscriber, error)
}
