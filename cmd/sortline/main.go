package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"sortline/config"
	"sortline/internal/api/dashboard"
	"sortline/internal/api/telegram"
	"sortline/internal/container"
	"sortline/internal/domain/port"
	"sortline/internal/infrastructure/kafka"
	"sortline/internal/infrastructure/relay"
	"sortline/internal/infrastructure/storage"
	"sortline/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg, logger); err != nil {
		logger.Error("sortline stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger *slog.Logger) error {
	// Контроллер реле необязателен: без него команды просто не уходят
	dispatcher := relay.NewDispatcher(nil, logger)
	if cfg.Serial.Port != "" {
		d, err := relay.Open(cfg.Serial.Port, cfg.Serial.Baud, cfg.Serial.Settle, logger.With("component", "relay"))
		if err != nil {
			logger.Warn("relay controller not connected", "port", cfg.Serial.Port, "err", err)
		} else {
			dispatcher = d
		}
	}
	defer dispatcher.Close()

	deps := container.Deps{
		Opener:    newOpener(cfg),
		Extractor: vision.NewExtractor(cfg.Vision.MinBlobArea, cfg.Vision.MorphIterations),
		Sender:    dispatcher,
	}
	if cfg.HTTP.Addr != "" {
		deps.Annotator = vision.Annotator{}
	}
	if cfg.Telegram.Token != "" {
		deps.Subscribers = storage.NewMemorySubscriberRepository()
	}

	c, err := container.New(cfg, deps, logger)
	if err != nil {
		return err
	}

	history := storage.NewMemoryHistory(cfg.Events.HistorySize)

	// Потребители дочитывают очередь до закрытия раздатчика
	drain := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	buffer := cfg.Events.EventBuffer
	actuatorSub := c.Emitter.SubscribeEvents("actuator", buffer)
	spawn(func() { c.Actuator.Run(drain, actuatorSub) })

	historySub := c.Emitter.SubscribeEvents("history", buffer)
	spawn(func() { historySub.Consume(drain, history.Add) })

	if cfg.HTTP.Addr != "" {
		server := dashboard.NewServer(cfg.HTTP.Addr, c.Vision, history, dashboardInfo(cfg), logger.With("component", "dashboard"))
		wsSub := c.Emitter.SubscribeEvents("dashboard", buffer)
		frameSub := c.Emitter.SubscribeFrames("dashboard", cfg.Events.FrameBuffer)
		spawn(func() { server.ConsumeEvents(drain, wsSub) })
		spawn(func() { server.ConsumeFrames(drain, frameSub) })
		spawn(func() {
			if err := server.Run(ctx); err != nil {
				logger.Error("dashboard failed", "err", err)
			}
		})
	}

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, c.Subscriptions, history, c.Vision, logger.With("component", "telegram"))
		if err != nil {
			logger.Warn("telegram disabled", "err", err)
		} else {
			tgSub := c.Emitter.SubscribeEvents("telegram", buffer)
			spawn(func() { bot.ConsumeEvents(drain, tgSub) })
			spawn(func() {
				if err := bot.Run(ctx); err != nil {
					logger.Error("telegram bot failed", "err", err)
				}
			})
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.With("component", "kafka"))
		if err != nil {
			logger.Warn("kafka export disabled", "err", err)
		} else {
			defer producer.Close()
			kafkaSub := c.Emitter.SubscribeEvents("kafka", buffer)
			spawn(func() { kafkaSub.Consume(drain, producer.Export) })
		}
	}

	go runConsole(ctx, os.Stdin, c.Actuator, c.Vision, stop, logger.With("component", "console"))

	logger.Info("sortline started",
		"mode", cfg.Vision.Mode,
		"classes", cfg.SegmentClasses().Names(),
		"line_x", cfg.Vision.TriggerLineX,
		"replay", cfg.Replay(),
		"relay", dispatcher.Connected(),
	)

	runErr := c.Vision.Run(ctx)
	c.Emitter.Close()
	stop()
	wg.Wait()

	if runErr != nil {
		return runErr
	}
	logger.Info("sortline finished", "stats", c.Vision.Stats())
	return nil
}

func newOpener(cfg *config.Config) port.CameraOpener {
	if cfg.Replay() {
		return vision.ReplayOpener{
			Dir:      cfg.Camera.ReplayDir,
			Width:    cfg.Camera.Width,
			Height:   cfg.Camera.Height,
			Interval: cfg.Camera.ReplayInterval,
		}
	}
	return vision.NewCameraOpener(cfg.Camera.Width, cfg.Camera.Height)
}

func dashboardInfo(cfg *config.Config) dashboard.Info {
	source := fmt.Sprintf("camera %d", cfg.Camera.Index)
	if cfg.Replay() {
		source = "replay " + cfg.Camera.ReplayDir
	}
	return dashboard.Info{
		Mode:          cfg.Vision.Mode,
		Source:        source,
		TriggerLineX:  cfg.Vision.TriggerLineX,
		TriggerOffset: cfg.Vision.TriggerOffset,
		Cooldown:      cfg.Vision.Cooldown.String(),
		CooldownScope: cfg.Vision.CooldownScope,
		Classes:       cfg.SegmentClasses().Names(),
		SerialPort:    cfg.Serial.Port,
	}
}
