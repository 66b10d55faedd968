package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"sortline/internal/domain/entity"
)

// Subscription ограниченная очередь уведомлений одного потребителя.
// При переполнении отбрасывается самое новое уведомление.
type Subscription[T any] struct {
	name    string
	ch      chan T
	dropped atomic.Uint64
}

func newSubscription[T any](name string, buffer int) *Subscription[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Subscription[T]{name: name, ch: make(chan T, buffer)}
}

// Name имя потребителя
func (s *Subscription[T]) Name() string { return s.name }

// C канал уведомлений; закрывается при Emitter.Close
func (s *Subscription[T]) C() <-chan T { return s.ch }

// Dropped число отброшенных уведомлений
func (s *Subscription[T]) Dropped() uint64 { return s.dropped.Load() }

// Consume вызывает fn на каждое уведомление до отмены ctx или закрытия канала
func (s *Subscription[T]) Consume(ctx context.Context, fn func(T)) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-s.ch:
			if !ok {
				return
			}
			fn(v)
		}
	}
}

func (s *Subscription[T]) offer(v T) bool {
	select {
	case s.ch <- v:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

type (
	EventSubscription = Subscription[entity.ClassificationEvent]
	FrameSubscription = Subscription[entity.FrameNotification]
)

// Emitter раздаёт события и кадры потребителям, никогда не блокируясь
type Emitter struct {
	mu     sync.RWMutex
	events []*EventSubscription
	frames []*FrameSubscription
	closed bool
	logger *slog.Logger
}

// NewEmitter создаёт раздатчик без подписчиков
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{logger: logger}
}

// SubscribeEvents регистрирует потребителя событий классификации
func (e *Emitter) SubscribeEvents(name string, buffer int) *EventSubscription {
	s := newSubscription[entity.ClassificationEvent](name, buffer)
	e.mu.Lock()
	e.events = append(e.events, s)
	e.mu.Unlock()
	return s
}

// SubscribeFrames регистрирует потребителя размеченных кадров
func (e *Emitter) SubscribeFrames(name string, buffer int) *FrameSubscription {
	s := newSubscription[entity.FrameNotification](name, buffer)
	e.mu.Lock()
	e.frames = append(e.frames, s)
	e.mu.Unlock()
	return s
}

// HasFrameSubscribers нужна ли разметка кадров
func (e *Emitter) HasFrameSubscribers() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.frames) > 0 && !e.closed
}

// PublishEvent доставляет событие каждому потребителю ровно один раз.
// Возвращает число потребителей, которым событие не поместилось.
func (e *Emitter) PublishEvent(ev entity.ClassificationEvent) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return 0
	}
	dropped := 0
	for _, s := range e.events {
		if !s.offer(ev) {
			dropped++
			e.logger.Debug("event dropped", "subscriber", s.name, "label", ev.Label)
		}
	}
	return dropped
}

// PublishFrame доставляет кадр; медленный потребитель просто пропускает кадры
func (e *Emitter) PublishFrame(n entity.FrameNotification) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	for _, s := range e.frames {
		s.offer(n)
	}
}

// Dropped суммарно отброшенные события по всем потребителям
func (e *Emitter) Dropped() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var n uint64
	for _, s := range e.events {
		n += s.Dropped()
	}
	return n
}

// Close закрывает все каналы. Вызывается после остановки цикла зрения.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for _, s := range e.events {
		close(s.ch)
	}
	for _, s := range e.frames {
		close(s.ch)
	}
}
