package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"sortline/internal/domain/port"
)

// VisionStats счётчики цикла зрения
type VisionStats struct {
	FramesProcessed uint64 `json:"frames_processed"`
	FramesSkipped   uint64 `json:"frames_skipped"`
	EventsEmitted   uint64 `json:"events_emitted"`
	EventsDropped   uint64 `json:"events_dropped"`
	Running         bool   `json:"running"`
}

// VisionService единственный владелец камеры и состояния остывания
type VisionService struct {
	opener      port.CameraOpener
	cameraIndex int
	pipeline    *Pipeline
	emitter     *Emitter
	logger      *slog.Logger

	processed atomic.Uint64
	skipped   atomic.Uint64
	events    atomic.Uint64
	running   atomic.Bool
}

// NewVisionService создаёт цикл зрения поверх открывателя камеры
func NewVisionService(opener port.CameraOpener, cameraIndex int, pipeline *Pipeline, emitter *Emitter, logger *slog.Logger) *VisionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionService{
		opener:      opener,
		cameraIndex: cameraIndex,
		pipeline:    pipeline,
		emitter:     emitter,
		logger:      logger,
	}
}

// Run открывает камеру и обрабатывает кадры, пока ctx не отменён.
// Отмена проверяется один раз в начале итерации; кадр всегда обрабатывается до конца.
// Камера закрывается на любом пути выхода.
func (s *VisionService) Run(ctx context.Context) error {
	src, err := s.opener.Open(s.cameraIndex)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", s.cameraIndex, err)
	}
	s.running.Store(true)
	defer func() {
		s.running.Store(false)
		if err := src.Close(); err != nil {
			s.logger.Warn("camera close failed", "err", err)
		}
		s.logger.Info("vision loop stopped", "processed", s.processed.Load(), "skipped", s.skipped.Load())
	}()

	finite, _ := src.(port.FiniteSource)
	s.logger.Info("vision loop started", "camera", s.cameraIndex)

	for {
		if ctx.Err() != nil {
			return nil
		}
		if finite != nil && finite.Exhausted() {
			return nil
		}

		frame, ok := src.Read()
		if !ok {
			s.skipped.Add(1)
			continue
		}

		events, err := s.pipeline.Process(frame)
		if err != nil {
			s.skipped.Add(1)
			s.logger.Debug("frame skipped", "seq", frame.Seq, "err", err)
			continue
		}
		s.processed.Add(1)
		s.events.Add(uint64(len(events)))
	}
}

// Stats снимок счётчиков; безопасен из любой горутины
func (s *VisionService) Stats() VisionStats {
	st := VisionStats{
		FramesProcessed: s.processed.Load(),
		FramesSkipped:   s.skipped.Load(),
		EventsEmitted:   s.events.Load(),
		Running:         s.running.Load(),
	}
	if s.emitter != nil {
		st.EventsDropped = s.emitter.Dropped()
	}
	return st
}
