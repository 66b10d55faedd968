package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

func newVision(src port.FrameSource, openErr error, ex port.BlobExtractor) (*VisionService, *Emitter) {
	p, emitter := newTestPipeline(ex, NewColorZones(entity.DefaultColorTable()), ScopeClass)
	return NewVisionService(fakeOpener{src: src, err: openErr}, 0, p, emitter, nil), emitter
}

func TestVision_ReplayStopsWhenExhausted(t *testing.T) {
	naranja := classNamed("NARANJA")
	ex := &scriptedExtractor{frames: map[int64][]port.ClassBlobs{
		1: {{Class: naranja, Blobs: []entity.Blob{{X: 310, Width: 40, Height: 60}}}},
		3: {{Class: naranja, Blobs: []entity.Blob{{X: 310, Width: 40, Height: 60}}}},
	}}
	src := &sliceSource{frames: []entity.Frame{
		{Seq: 1, Image: blank, CapturedAt: at(0)},
		{Seq: 2, CapturedAt: at(time.Second)}, // сбой чтения
		{Seq: 3, Image: blank, CapturedAt: at(2 * time.Second)},
	}}
	svc, emitter := newVision(finiteSource{src}, nil, ex)
	sub := emitter.SubscribeEvents("test", 8)

	require.NoError(t, svc.Run(context.Background()))
	require.True(t, src.closed)

	st := svc.Stats()
	require.Equal(t, uint64(2), st.FramesProcessed)
	require.Equal(t, uint64(1), st.FramesSkipped)
	require.Equal(t, uint64(2), st.EventsEmitted)
	require.False(t, st.Running)
	require.Len(t, sub.C(), 2)
}

func TestVision_CancelledContextStopsAndCloses(t *testing.T) {
	src := &sliceSource{frames: []entity.Frame{{Seq: 1, Image: blank, CapturedAt: t0}}}
	svc, _ := newVision(src, nil, &scriptedExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.Run(ctx))
	require.True(t, src.closed)
	require.Equal(t, 0, src.next)
}

func TestVision_InfiniteSourceRunsUntilCancel(t *testing.T) {
	frames := make([]entity.Frame, 0, 50)
	for i := range 50 {
		frames = append(frames, entity.Frame{Seq: int64(i), Image: blank, CapturedAt: at(time.Duration(i) * time.Millisecond)})
	}
	src := &sliceSource{frames: frames}
	svc, _ := newVision(src, nil, &scriptedExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool { return src.consumed() >= len(frames) }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("vision loop did not stop")
	}
	require.True(t, src.closed)
	require.Equal(t, uint64(50), svc.Stats().FramesProcessed)
}

func TestVision_OpenFailure(t *testing.T) {
	svc, _ := newVision(nil, errors.New("no device"), &scriptedExtractor{})
	err := svc.Run(context.Background())
	require.ErrorContains(t, err, "open camera 0")
}

func TestVision_ExtractorErrorSkipsFrame(t *testing.T) {
	src := &sliceSource{frames: []entity.Frame{{Seq: 1, Image: blank, CapturedAt: t0}}}
	svc, _ := newVision(finiteSource{src}, nil, failingExtractor{})

	require.NoError(t, svc.Run(context.Background()))
	require.Equal(t, uint64(1), svc.Stats().FramesSkipped)
	require.Zero(t, svc.Stats().FramesProcessed)
}

type failingExtractor struct{}

func (failingExtractor) Extract(entity.Frame, entity.ColorTable) ([]port.ClassBlobs, error) {
	return nil, errors.New("segmentation failed")
}
