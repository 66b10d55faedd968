package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
)

var (
	t0   = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	line = entity.TriggerLine{X: 320, Offset: 20}
)

func at(d time.Duration) time.Time { return t0.Add(d) }

func TestTrigger_FiresInsideBand(t *testing.T) {
	tr := NewTriggerEvaluator(line, 1500*time.Millisecond, ScopeClass)
	require.True(t, tr.Evaluate("NARANJA", entity.Blob{X: 310, Width: 40}, t0))
}

func TestTrigger_BoundaryDoesNotFire(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Second, ScopeClass)
	require.False(t, tr.Evaluate("A", entity.Blob{X: 300, Width: 0}, t0)) // cx = 300
	require.False(t, tr.Evaluate("A", entity.Blob{X: 330, Width: 20}, t0)) // cx = 340
	require.True(t, tr.Armed("A", t0))
}

func TestTrigger_CooldownSuppressesRepeat(t *testing.T) {
	tr := NewTriggerEvaluator(line, 1500*time.Millisecond, ScopeClass)
	b := entity.Blob{X: 310, Width: 40}

	require.True(t, tr.Evaluate("NARANJA", b, at(0)))
	require.False(t, tr.Evaluate("NARANJA", b, at(500*time.Millisecond)))
	// ровно cooldown - ещё остывает
	require.False(t, tr.Evaluate("NARANJA", b, at(1500*time.Millisecond)))
	require.True(t, tr.Evaluate("NARANJA", entity.Blob{X: 305, Width: 40}, at(2*time.Second)))
}

func TestTrigger_OutsideBandDoesNotTouchState(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Second, ScopeClass)
	require.False(t, tr.Evaluate("A", entity.Blob{X: 0, Width: 10}, t0))
	require.True(t, tr.Armed("A", t0))
}

func TestTrigger_PerClassScope(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Second, ScopeClass)
	b := entity.Blob{X: 310, Width: 20}
	require.True(t, tr.Evaluate("VERDE", b, t0))
	require.True(t, tr.Evaluate("AZUL", b, t0))
	require.False(t, tr.Evaluate("VERDE", b, t0))
}

func TestTrigger_SharedScope(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Second, ScopeShared)
	b := entity.Blob{X: 310, Width: 20}
	require.True(t, tr.Evaluate("VERDE", b, t0))
	require.False(t, tr.Evaluate("AZUL", b, t0))
	require.True(t, tr.Evaluate("AZUL", b, at(1100*time.Millisecond)))
}

func TestTrigger_ClockGoingBackwardsKeepsCooling(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Second, ScopeClass)
	b := entity.Blob{X: 310, Width: 20}
	require.True(t, tr.Evaluate("A", b, at(10*time.Second)))
	require.False(t, tr.Evaluate("A", b, at(0)))
	require.True(t, tr.Evaluate("A", b, at(12*time.Second)))
}

func TestTrigger_Reset(t *testing.T) {
	tr := NewTriggerEvaluator(line, time.Hour, ScopeClass)
	b := entity.Blob{X: 310, Width: 20}
	require.True(t, tr.Evaluate("A", b, t0))
	tr.Reset()
	require.True(t, tr.Evaluate("A", b, t0))
}
