package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// handleStatus возвращает счётчики цикла и сводку конфигурации
func (s *Server) handleStatus(c *fiber.Ctx) error {
	st := Status{
		Config:    s.info,
		WSClients: s.hub.ClientCount(),
	}
	if s.vision != nil {
		st.Vision = s.vision.Stats()
	}
	if s.history != nil {
		st.Total = s.history.Total()
	}
	if _, _, at := s.latestFrame(); !at.IsZero() {
		st.LastFrameAt = &at
	}
	return c.JSON(st)
}

// handleEvents возвращает последние события, новые первыми
func (s *Server) handleEvents(c *fiber.Ctx) error {
	if s.history == nil {
		return c.JSON([]any{})
	}
	events := s.history.Recent()
	if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return c.JSON(events)
}

func (s *Server) handleCounts(c *fiber.Ctx) error {
	if s.history == nil {
		return c.JSON(map[string]int{})
	}
	return c.JSON(s.history.Counts())
}

// handleFrame отдаёт последний размеченный кадр
func (s *Server) handleFrame(c *fiber.Ctx) error {
	data, seq, _ := s.latestFrame()
	if data == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no frame yet")
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("X-Frame-Seq", strconv.FormatInt(seq, 10))
	return c.Send(data)
}

// handleEventsWS пишет события клиенту, пока тот подключён
func (s *Server) handleEventsWS(conn *websocket.Conn) {
	cl := s.hub.register(clientBuffer)

	// чтение нужно только чтобы заметить отключение
	go func() {
		defer s.hub.unregister(cl)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for data := range cl.send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.hub.unregister(cl)
			break
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
}
