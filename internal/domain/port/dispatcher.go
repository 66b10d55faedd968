package port

import "sortline/internal/domain/entity"

// CommandSender отправляет команды контроллеру реле.
// Ошибки не возвращаются: пропущенная команда не должна останавливать линию.
type CommandSender interface {
	SendCommand(cmd entity.Command)
}
