package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Command короткая команда контроллеру исполнительных механизмов
type Command string

const (
	CommandStart Command = "S" // запуск конвейера
	CommandStop  Command = "P" // остановка конвейера
)

// ZoneCommand команда срабатывания реле зоны
func ZoneCommand(zone int) Command {
	return Command(strconv.Itoa(zone))
}

// ParseCommand разбирает ввод оператора
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "start":
		return CommandStart, nil
	case "p", "stop":
		return CommandStop, nil
	case "1", "2", "3":
		return Command(strings.TrimSpace(s)), nil
	}
	return "", fmt.Errorf("unknown command %q", s)
}
