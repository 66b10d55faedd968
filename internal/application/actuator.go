package app

import (
	"context"
	"log/slog"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// ActuatorService переводит события в команды зон и пропускает команды оператора.
// Команды идут только в контроллер реле, никогда в цикл зрения.
type ActuatorService struct {
	sender port.CommandSender
	logger *slog.Logger
}

// NewActuatorService создаёт диспетчер поверх отправителя команд
func NewActuatorService(sender port.CommandSender, logger *slog.Logger) *ActuatorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActuatorService{sender: sender, logger: logger}
}

// Run отправляет команду зоны на каждое событие подписки
func (a *ActuatorService) Run(ctx context.Context, sub *EventSubscription) {
	sub.Consume(ctx, func(ev entity.ClassificationEvent) {
		a.logger.Debug("dispatch", "label", ev.Label, "zone", ev.Zone)
		a.sender.SendCommand(entity.ZoneCommand(ev.Zone))
	})
}

// Operator передаёт команду оператора (старт, стоп, ручная зона)
func (a *ActuatorService) Operator(cmd entity.Command) {
	a.logger.Info("operator command", "cmd", string(cmd))
	a.sender.SendCommand(cmd)
}
