package app

import (
	"time"

	"sortline/internal/domain/entity"
)

// CooldownScope определяет, чем разделяется время остывания
type CooldownScope string

const (
	ScopeClass  CooldownScope = "class"  // у каждого класса своё время
	ScopeShared CooldownScope = "shared" // одно время на все области
)

const sharedKey = ""

// TriggerEvaluator проверяет пересечение линии и антидребезг.
// Состояния: ARMED (нет записи или остывание истекло) и COOLING.
// Не потокобезопасен: единственный писатель - цикл зрения.
type TriggerEvaluator struct {
	line     entity.TriggerLine
	cooldown time.Duration
	scope    CooldownScope
	last     map[string]time.Time
}

// NewTriggerEvaluator создаёт оценщик в состоянии ARMED
func NewTriggerEvaluator(line entity.TriggerLine, cooldown time.Duration, scope CooldownScope) *TriggerEvaluator {
	if scope != ScopeShared {
		scope = ScopeClass
	}
	return &TriggerEvaluator{
		line:     line,
		cooldown: cooldown,
		scope:    scope,
		last:     make(map[string]time.Time),
	}
}

// Line возвращает линию срабатывания
func (t *TriggerEvaluator) Line() entity.TriggerLine {
	return t.line
}

// Armed сообщает, может ли класс сработать в момент now.
// Если часы ушли назад, класс считается остывающим.
func (t *TriggerEvaluator) Armed(class string, now time.Time) bool {
	last, seen := t.last[t.key(class)]
	if !seen {
		return true
	}
	return now.Sub(last) > t.cooldown
}

// Evaluate срабатывает, если центр области в полосе и класс взведён.
// Запись времени происходит сразу: следующая область того же класса
// в этом же кадре уже видит COOLING.
func (t *TriggerEvaluator) Evaluate(class string, blob entity.Blob, now time.Time) bool {
	if !t.line.Contains(blob.CX()) {
		return false
	}
	if !t.Armed(class, now) {
		return false
	}
	t.last[t.key(class)] = now
	return true
}

// Reset возвращает все классы в ARMED
func (t *TriggerEvaluator) Reset() {
	clear(t.last)
}

func (t *TriggerEvaluator) key(class string) string {
	if t.scope == ScopeShared {
		return sharedKey
	}
	return class
}
