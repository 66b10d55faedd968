//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
)

func TestExtractor_NoMatchingPixels(t *testing.T) {
	e := NewExtractor(1500, 2)
	frame := entity.Frame{Image: newFrame(640, 480)}

	found, err := e.Extract(frame, entity.DefaultColorTable())
	require.NoError(t, err)
	require.Len(t, found, 3)
	for _, cb := range found {
		require.Empty(t, cb.Blobs, cb.Class.Name)
	}
}

func TestExtractor_PerClassBlobs(t *testing.T) {
	e := NewExtractor(1500, 2)
	img := newFrame(640, 480,
		paint{image.Rect(310, 100, 350, 160), orange},
		paint{image.Rect(100, 300, 160, 360), green},
		paint{image.Rect(500, 10, 510, 20), blue}, // слишком мелкий
	)

	found, err := e.Extract(entity.Frame{Seq: 7, Image: img}, entity.DefaultColorTable())
	require.NoError(t, err)

	byName := map[string][]entity.Blob{}
	for _, cb := range found {
		byName[cb.Class.Name] = cb.Blobs
	}
	require.Equal(t, []entity.Blob{{X: 310, Y: 100, Width: 40, Height: 60, Area: 2400}}, byName["NARANJA"])
	require.Equal(t, []entity.Blob{{X: 100, Y: 300, Width: 60, Height: 60, Area: 3600}}, byName["VERDE"])
	require.Empty(t, byName["AZUL"])
}

func TestExtractor_KeepsTableOrder(t *testing.T) {
	e := NewExtractor(0, 0)
	found, err := e.Extract(entity.Frame{Image: newFrame(20, 20)}, entity.DefaultColorTable())
	require.NoError(t, err)
	require.Equal(t, "AZUL", found[0].Class.Name)
	require.Equal(t, "VERDE", found[1].Class.Name)
	require.Equal(t, "NARANJA", found[2].Class.Name)
}

func TestExtractor_RejectsMissingImage(t *testing.T) {
	_, err := NewExtractor(0, 0).Extract(entity.Frame{Seq: 3}, entity.DefaultColorTable())
	require.Error(t, err)
}
