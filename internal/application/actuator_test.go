package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
)

func TestActuator_DispatchesZoneCommands(t *testing.T) {
	emitter := NewEmitter(nil)
	sub := emitter.SubscribeEvents("actuator", 8)
	sender := &recordingSender{}
	act := NewActuatorService(sender, nil)

	emitter.PublishEvent(entity.ClassificationEvent{Label: "NARANJA", Zone: 1})
	emitter.PublishEvent(entity.ClassificationEvent{Label: "AZUL", Zone: 3})
	emitter.Close()

	act.Run(context.Background(), sub)
	require.Equal(t, []entity.Command{"1", "3"}, sender.Sent())
}

func TestActuator_StopsOnCancel(t *testing.T) {
	emitter := NewEmitter(nil)
	sub := emitter.SubscribeEvents("actuator", 1)
	act := NewActuatorService(&recordingSender{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		act.Run(ctx, sub)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("actuator did not stop")
	}
}

func TestActuator_OperatorCommands(t *testing.T) {
	sender := &recordingSender{}
	act := NewActuatorService(sender, nil)

	act.Operator(entity.CommandStart)
	act.Operator(entity.CommandStop)
	act.Operator(entity.ZoneCommand(2))

	require.Equal(t, []entity.Command{entity.CommandStart, entity.CommandStop, "2"}, sender.Sent())
}
