package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
)

func TestMemoryHistory_KeepsLastN(t *testing.T) {
	h := NewMemoryHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(entity.ClassificationEvent{Label: "VERDE", Measurement: i})
	}

	recent := h.Recent()
	require.Len(t, recent, 3)
	require.Equal(t, 5, recent[0].Measurement)
	require.Equal(t, 4, recent[1].Measurement)
	require.Equal(t, 3, recent[2].Measurement)
	require.Equal(t, 5, h.Total())
}

func TestMemoryHistory_PartialRing(t *testing.T) {
	h := NewMemoryHistory(0)
	require.Empty(t, h.Recent())

	h.Add(entity.ClassificationEvent{Label: "AZUL", Measurement: 1})
	h.Add(entity.ClassificationEvent{Label: "NARANJA", Measurement: 2})

	recent := h.Recent()
	require.Len(t, recent, 2)
	require.Equal(t, "NARANJA", recent[0].Label)
	require.Len(t, h.ring, DefaultHistorySize)
}

func TestMemoryHistory_Counts(t *testing.T) {
	h := NewMemoryHistory(2)
	for _, l := range []string{"AZUL", "VERDE", "AZUL", "NARANJA", "AZUL"} {
		h.Add(entity.ClassificationEvent{Label: l})
	}

	counts := h.Counts()
	require.Equal(t, map[string]int{"AZUL": 3, "VERDE": 1, "NARANJA": 1}, counts)
	counts["AZUL"] = 100
	require.Equal(t, 3, h.Counts()["AZUL"])
	require.Equal(t, []string{"AZUL", "NARANJA", "VERDE"}, h.Labels())
}
