package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// Pipeline превращает один кадр в ноль или больше событий классификации
type Pipeline struct {
	extractor port.BlobExtractor
	classes   entity.ColorTable
	trigger   *TriggerEvaluator
	zones     port.ZoneClassifier
	emitter   *Emitter
	annotator port.FrameAnnotator
	logger    *slog.Logger

	// NewID генерирует идентификатор события
	NewID func() uuid.UUID
	// Now используется, если у кадра нет времени захвата
	Now func() time.Time
}

// NewPipeline собирает конвейер обработки кадра. annotator может быть nil.
func NewPipeline(
	extractor port.BlobExtractor,
	classes entity.ColorTable,
	trigger *TriggerEvaluator,
	zones port.ZoneClassifier,
	emitter *Emitter,
	annotator port.FrameAnnotator,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor,
		classes:   classes,
		trigger:   trigger,
		zones:     zones,
		emitter:   emitter,
		annotator: annotator,
		logger:    logger,
		NewID:     uuid.New,
		Now:       time.Now,
	}
}

// Process обрабатывает кадр полностью и публикует события.
// Время кадра - момент захвата, поэтому повтор записи детерминирован.
func (p *Pipeline) Process(frame entity.Frame) ([]entity.ClassificationEvent, error) {
	now := frame.CapturedAt
	if now.IsZero() {
		now = p.Now()
	}

	found, err := p.extractor.Extract(frame, p.classes)
	if err != nil {
		return nil, fmt.Errorf("extract frame %d: %w", frame.Seq, err)
	}

	var events []entity.ClassificationEvent
	for _, cb := range found {
		for _, blob := range cb.Blobs {
			if !p.trigger.Evaluate(cb.Class.Name, blob, now) {
				continue
			}
			c, err := p.zones.Classify(cb.Class, blob)
			if err != nil {
				p.logger.Error("classification failed", "class", cb.Class.Name, "err", err)
				continue
			}
			ev := entity.ClassificationEvent{
				ID:          p.NewID(),
				Label:       c.Label,
				Measurement: c.Measurement,
				Zone:        c.Zone,
				CX:          blob.CX(),
				FrameSeq:    frame.Seq,
				At:          now,
			}
			p.logger.Info("trigger", "label", ev.Label, "zone", ev.Zone, "height", ev.Measurement, "cx", ev.CX)
			p.emitter.PublishEvent(ev)
			events = append(events, ev)
		}
	}

	if p.annotator != nil && p.emitter.HasFrameSubscribers() {
		img := p.annotator.Annotate(frame.Image, p.trigger.Line(), found, len(events) > 0)
		p.emitter.PublishFrame(entity.FrameNotification{Seq: frame.Seq, Image: img, Events: len(events)})
	}

	return events, nil
}

// Reset сбрасывает остывание, например перед повтором записи
func (p *Pipeline) Reset() {
	p.trigger.Reset()
}
