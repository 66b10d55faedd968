package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	app "sortline/internal/application"
	"sortline/internal/domain/entity"
)

// operator принимает команды старт/стоп и ручные зоны
type operator interface {
	Operator(cmd entity.Command)
}

type statsSource interface {
	Stats() app.VisionStats
}

// runConsole читает команды оператора построчно: s, p, 1..3, stats, q.
// Команды уходят только контроллеру реле.
func runConsole(ctx context.Context, in io.Reader, op operator, stats statsSource, quit func(), logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			logger.Info("operator requested stop")
			quit()
			return
		case "stats":
			st := stats.Stats()
			logger.Info("stats",
				"processed", st.FramesProcessed,
				"skipped", st.FramesSkipped,
				"events", st.EventsEmitted,
				"dropped", st.EventsDropped,
			)
			continue
		}

		cmd, err := entity.ParseCommand(line)
		if err != nil {
			logger.Warn("unknown operator command", "input", line)
			continue
		}
		op.Operator(cmd)
	}
}
