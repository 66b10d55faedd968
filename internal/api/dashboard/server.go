// Package dashboard отдаёт состояние линии сортировки по HTTP и websocket.
// Только чтение: управлять линией отсюда нельзя.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	app "sortline/internal/application"
	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

const jpegQuality = 80

// StatsProvider источник счётчиков цикла зрения
type StatsProvider interface {
	Stats() app.VisionStats
}

// Info краткая сводка конфигурации для /api/status
type Info struct {
	Mode          string   `json:"mode"`
	Source        string   `json:"source"`
	TriggerLineX  int      `json:"trigger_line_x"`
	TriggerOffset int      `json:"trigger_offset"`
	Cooldown      string   `json:"cooldown"`
	CooldownScope string   `json:"cooldown_scope"`
	Classes       []string `json:"classes"`
	SerialPort    string   `json:"serial_port,omitempty"`
}

// Status ответ /api/status
type Status struct {
	Vision      app.VisionStats `json:"vision"`
	Config      Info            `json:"config"`
	Total       int             `json:"total"`
	WSClients   int             `json:"ws_clients"`
	LastFrameAt *time.Time      `json:"last_frame_at,omitempty"`
}

// Server панель наблюдения
type Server struct {
	app     *fiber.App
	addr    string
	vision  StatsProvider
	history port.EventHistory
	info    Info
	hub     *Hub
	logger  *slog.Logger

	frameMu  sync.RWMutex
	frame    []byte
	frameSeq int64
	frameAt  time.Time
}

// NewServer создаёт сервер панели
func NewServer(addr string, vision StatsProvider, history port.EventHistory, info Info, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:    addr,
		vision:  vision,
		history: history,
		info:    info,
		hub:     NewHub(logger),
		logger:  logger,
	}

	fa := fiber.New(fiber.Config{
		AppName:               "sortline",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	fa.Use(cors.New())

	api := fa.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/events", s.handleEvents)
	api.Get("/counts", s.handleCounts)
	api.Get("/frame.jpg", s.handleFrame)

	fa.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	fa.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = fa
	return s
}

// Run слушает адрес до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", s.addr)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case <-ctx.Done():
		s.hub.Close()
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("shutdown dashboard: %w", err)
		}
		return nil
	case err := <-errCh:
		s.hub.Close()
		if err != nil {
			return fmt.Errorf("dashboard listen %s: %w", s.addr, err)
		}
		return nil
	}
}

// BroadcastEvent отправляет событие websocket-клиентам
func (s *Server) BroadcastEvent(ev entity.ClassificationEvent) {
	if err := s.hub.BroadcastJSON(ev); err != nil {
		s.logger.Warn("encode event failed", "err", err)
	}
}

// SetFrame сохраняет JPEG-копию последнего размеченного кадра
func (s *Server) SetFrame(n entity.FrameNotification) error {
	if n.Image == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, n.Image, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encode frame %d: %w", n.Seq, err)
	}

	s.frameMu.Lock()
	s.frame = buf.Bytes()
	s.frameSeq = n.Seq
	s.frameAt = time.Now()
	s.frameMu.Unlock()
	return nil
}

// ConsumeFrames сохраняет кадры из подписки, пока она открыта
func (s *Server) ConsumeFrames(ctx context.Context, sub *app.FrameSubscription) {
	sub.Consume(ctx, func(n entity.FrameNotification) {
		if err := s.SetFrame(n); err != nil {
			s.logger.Warn("frame snapshot failed", "err", err)
		}
	})
}

// ConsumeEvents рассылает события из подписки
func (s *Server) ConsumeEvents(ctx context.Context, sub *app.EventSubscription) {
	sub.Consume(ctx, s.BroadcastEvent)
}

func (s *Server) latestFrame() ([]byte, int64, time.Time) {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()
	return s.frame, s.frameSeq, s.frameAt
}
