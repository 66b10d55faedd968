package entity

// SubscriberState состояние чата-подписчика уведомлений
type SubscriberState string

const (
	StateSubscribed SubscriberState = "subscribed" // получает события
	StateMuted      SubscriberState = "muted"      // уведомления отключены
)

// Subscriber представляет чат, получающий уведомления о событиях
type Subscriber struct {
	ID     int64           // Telegram User ID
	ChatID int64           // Telegram Chat ID
	State  SubscriberState // Текущее состояние подписки
}

// NewSubscriber создаёт подписчика в выключенном состоянии
func NewSubscriber(userID, chatID int64) *Subscriber {
	return &Subscriber{
		ID:     userID,
		ChatID: chatID,
		State:  StateMuted,
	}
}

// SetState обновляет состояние подписчика
func (s *Subscriber) SetState(state SubscriberState) {
	s.State = state
}

// Active сообщает, нужно ли отправлять уведомления
func (s *Subscriber) Active() bool {
	return s.State == StateSubscribed
}
