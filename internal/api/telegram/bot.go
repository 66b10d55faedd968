package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	app "sortline/internal/application"
	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я сообщаю о деталях, которые линия отправила в зоны сортировки.

🔔 Уведомления включены.

📋 Команды:
/stats — счётчики линии
/history — последние события
/mute — отключить уведомления
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /start — подписаться на события линии
2️⃣ Каждая деталь, пересёкшая линию срабатывания, придёт сообщением
3️⃣ /mute — отписаться

📋 Команды:
/stats — кадры, события и количество по классам
/history — последние события`

	msgMuted          = "🔕 Уведомления отключены. Отправьте /start, чтобы включить снова."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoEvents       = "📭 Событий пока нет."
	msgError          = "⚠️ Не удалось выполнить команду. Попробуйте позже."
)

// Sender отправляет сообщения в Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StatsProvider источник счётчиков цикла зрения
type StatsProvider interface {
	Stats() app.VisionStats
}

// Bot представляет Telegram-бота уведомлений. Управлять линией через него нельзя.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	subs    *app.SubscriptionService
	history port.EventHistory
	stats   StatsProvider
	logger  *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, subs *app.SubscriptionService, history port.EventHistory, stats StatsProvider, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	b := newBot(api, subs, history, stats, logger)
	b.api = api
	b.logger.Info("telegram bot authorized", "account", api.Self.UserName)
	return b, nil
}

func newBot(sender Sender, subs *app.SubscriptionService, history port.EventHistory, stats StatsProvider, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		sender:  sender,
		subs:    subs,
		history: history,
		stats:   stats,
		logger:  logger,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// ConsumeEvents пересылает события подписчикам, пока подписка открыта
func (b *Bot) ConsumeEvents(ctx context.Context, sub *app.EventSubscription) {
	sub.Consume(ctx, func(ev entity.ClassificationEvent) {
		b.Notify(ctx, ev)
	})
}

// Notify отправляет событие всем подписанным чатам
func (b *Bot) Notify(ctx context.Context, ev entity.ClassificationEvent) {
	chats, err := b.subs.ActiveChats(ctx)
	if err != nil {
		b.logger.Error("list subscribers failed", "err", err)
		return
	}
	text := formatEvent(ev)
	for _, chatID := range chats {
		b.sendMessage(chatID, text)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
		return
	}

	b.handleCommand(ctx, msg)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.subs.Subscribe(ctx, msg.From.ID, chatID); err != nil {
			b.logger.Error("subscribe failed", "chat", chatID, "err", err)
			b.sendMessage(chatID, msgError)
			return
		}
		b.sendMessage(chatID, msgStart)

	case "mute":
		if _, err := b.subs.Mute(ctx, msg.From.ID, chatID); err != nil {
			b.logger.Error("mute failed", "chat", chatID, "err", err)
			b.sendMessage(chatID, msgError)
			return
		}
		b.sendMessage(chatID, msgMuted)

	case "stats":
		b.sendMessage(chatID, b.formatStats())

	case "history":
		b.sendMessage(chatID, b.formatHistory())

	case "help":
		b.sendMessage(chatID, msgHelp)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func formatEvent(ev entity.ClassificationEvent) string {
	return fmt.Sprintf("📦 %s → зона %d (высота %d px, кадр %d)", ev.Label, ev.Zone, ev.Measurement, ev.FrameSeq)
}

func (b *Bot) formatStats() string {
	var sb strings.Builder
	if b.stats != nil {
		st := b.stats.Stats()
		state := "⏸ остановлена"
		if st.Running {
			state = "▶️ работает"
		}
		fmt.Fprintf(&sb, "📊 Линия: %s\nКадров: %d, пропущено: %d\nСобытий: %d, потеряно: %d\n",
			state, st.FramesProcessed, st.FramesSkipped, st.EventsEmitted, st.EventsDropped)
	}

	if b.history == nil {
		return sb.String()
	}
	counts := b.history.Counts()
	for _, label := range b.history.Labels() {
		fmt.Fprintf(&sb, "• %s: %d\n", label, counts[label])
	}
	return sb.String()
}

func (b *Bot) formatHistory() string {
	if b.history == nil {
		return msgNoEvents
	}
	events := b.history.Recent()
	if len(events) == 0 {
		return msgNoEvents
	}
	lines := lo.Map(events, func(ev entity.ClassificationEvent, _ int) string {
		return fmt.Sprintf("%s %s → зона %d (%d px)", ev.At.Format("15:04:05"), ev.Label, ev.Zone, ev.Measurement)
	})
	return "🕘 Последние события:\n" + strings.Join(lines, "\n")
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Warn("telegram send failed", "chat", chatID, "err", err)
	}
}
