package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

func TestAnnotate_DrawsOnCopy(t *testing.T) {
	src := newFrame(100, 50)
	line := entity.TriggerLine{X: 50, Offset: 5}
	found := []port.ClassBlobs{{
		Class: entity.ColorClass{Name: "NARANJA", Zone: 1},
		Blobs: []entity.Blob{{X: 10, Y: 10, Width: 20, Height: 20}},
	}}

	out := Annotate(src, line, found, false)

	require.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(50, 25))
	require.Equal(t, color.NRGBA{R: 255, G: 165, A: 255}, out.NRGBAAt(10, 15))
	require.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(20, 20)) // внутри рамки не закрашено

	// исходный кадр не изменился
	r, g, b, _ := src.At(50, 25).RGBA()
	require.Zero(t, r+g+b)
}

func TestAnnotate_FiredLineIsGreen(t *testing.T) {
	out := Annotate(newFrame(100, 50), entity.TriggerLine{X: 50}, nil, true)
	require.Equal(t, color.NRGBA{G: 255, A: 255}, out.NRGBAAt(52, 0))
	require.Equal(t, image.Rect(0, 0, 100, 50), out.Bounds())
}

func countColor(img *image.NRGBA, r image.Rectangle, c color.NRGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestAnnotate_DrawsClassLabel(t *testing.T) {
	blob := entity.Blob{X: 10, Y: 40, Width: 20, Height: 20}
	above := image.Rect(10, 20, 70, 37)
	boxColor := color.NRGBA{G: 255, A: 255}

	named := Annotate(newFrame(120, 80), entity.TriggerLine{X: 110}, []port.ClassBlobs{{
		Class: entity.ColorClass{Name: "VERDE", Zone: 2},
		Blobs: []entity.Blob{blob},
	}}, false)
	require.Positive(t, countColor(named, above, boxColor))

	unnamed := Annotate(newFrame(120, 80), entity.TriggerLine{X: 110}, []port.ClassBlobs{{
		Class: entity.ColorClass{Zone: 2},
		Blobs: []entity.Blob{blob},
	}}, false)
	require.Zero(t, countColor(unnamed, above, boxColor))
}

func TestAnnotate_LabelBelowBoxAtTopEdge(t *testing.T) {
	out := Annotate(newFrame(120, 80), entity.TriggerLine{X: 110}, []port.ClassBlobs{{
		Class: entity.ColorClass{Name: "AZUL", Zone: 3},
		Blobs: []entity.Blob{{X: 10, Y: 2, Width: 20, Height: 20}},
	}}, false)
	require.Positive(t, countColor(out, image.Rect(10, 23, 70, 40), color.NRGBA{B: 255, A: 255}))
}
