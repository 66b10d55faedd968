package container

import (
	"fmt"
	"log/slog"

	"sortline/config"
	app "sortline/internal/application"
	"sortline/internal/domain/port"
)

// Deps адаптеры инфраструктуры, которые собираются в cmd
type Deps struct {
	Opener      port.CameraOpener
	Extractor   port.BlobExtractor
	Annotator   port.FrameAnnotator
	Sender      port.CommandSender
	Subscribers port.SubscriberRepository
}

type Container struct {
	Emitter       *app.Emitter
	Pipeline      *app.Pipeline
	Vision        *app.VisionService
	Actuator      *app.ActuatorService
	Subscriptions *app.SubscriptionService
}

func New(cfg *config.Config, deps Deps, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	classes := cfg.SegmentClasses()
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: no color classes to segment", config.ErrInvalid)
	}

	zones, err := newZones(cfg)
	if err != nil {
		return nil, err
	}

	emitter := app.NewEmitter(logger.With("component", "emitter"))
	trigger := app.NewTriggerEvaluator(cfg.TriggerLine(), cfg.Vision.Cooldown, app.CooldownScope(cfg.Vision.CooldownScope))
	pipeline := app.NewPipeline(deps.Extractor, classes, trigger, zones, emitter, deps.Annotator, logger.With("component", "pipeline"))
	vision := app.NewVisionService(deps.Opener, cfg.Camera.Index, pipeline, emitter, logger.With("component", "vision"))
	actuator := app.NewActuatorService(deps.Sender, logger.With("component", "actuator"))

	var subscriptions *app.SubscriptionService
	if deps.Subscribers != nil {
		subscriptions = app.NewSubscriptionService(deps.Subscribers)
	}

	return &Container{
		Emitter:       emitter,
		Pipeline:      pipeline,
		Vision:        vision,
		Actuator:      actuator,
		Subscriptions: subscriptions,
	}, nil
}

func newZones(cfg *config.Config) (port.ZoneClassifier, error) {
	switch cfg.Vision.Mode {
	case config.ModeSize:
		return app.NewSizeZones(cfg.Size.Small, cfg.Size.Large, cfg.Size.Label), nil
	case config.ModeColor:
		table, err := cfg.ColorTable()
		if err != nil {
			return nil, err
		}
		return app.NewColorZones(table), nil
	default:
		return nil, fmt.Errorf("%w: classify mode %q", config.ErrInvalid, cfg.Vision.Mode)
	}
}
