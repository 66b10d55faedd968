package app

import (
	"context"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

type SubscriptionService struct {
	repo port.SubscriberRepository
}

func NewSubscriptionService(repo port.SubscriberRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

// SetState меняет состояние в хранилище; бот и рассылка вызывают сервис из разных горутин
func (s *SubscriptionService) SetState(ctx context.Context, userID, chatID int64, state entity.SubscriberState) (*entity.Subscriber, error) {
	return s.repo.UpdateState(ctx, userID, chatID, state)
}

func (s *SubscriptionService) Subscribe(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error) {
	return s.SetState(ctx, userID, chatID, entity.StateSubscribed)
}

func (s *SubscriptionService) Mute(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMuted)
}

// ActiveChats возвращает чаты для рассылки событий
func (s *SubscriptionService) ActiveChats(ctx context.Context) ([]int64, error) {
	subs, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	chats := make([]int64, 0, len(subs))
	for _, sub := range subs {
		chats = append(chats, sub.ChatID)
	}
	return chats, nil
}
