package app

import (
	"errors"
	"image"
	"sync"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// scriptedExtractor возвращает заранее заданные области по номеру кадра
type scriptedExtractor struct {
	frames map[int64][]port.ClassBlobs
}

func (s *scriptedExtractor) Extract(frame entity.Frame, classes entity.ColorTable) ([]port.ClassBlobs, error) {
	if frame.Image == nil {
		return nil, errors.New("no image")
	}
	return s.frames[frame.Seq], nil
}

type recordingAnnotator struct {
	fired []bool
}

func (r *recordingAnnotator) Annotate(img image.Image, _ entity.TriggerLine, _ []port.ClassBlobs, fired bool) image.Image {
	r.fired = append(r.fired, fired)
	return img
}

type recordingSender struct {
	mu   sync.Mutex
	sent []entity.Command
}

func (r *recordingSender) SendCommand(cmd entity.Command) {
	r.mu.Lock()
	r.sent = append(r.sent, cmd)
	r.mu.Unlock()
}

func (r *recordingSender) Sent() []entity.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Command(nil), r.sent...)
}

// sliceSource отдаёт кадры из среза; nil-изображение означает сбой чтения
type sliceSource struct {
	mu     sync.Mutex
	frames []entity.Frame
	next   int
	closed bool
	finite bool
}

func (s *sliceSource) Read() (entity.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.frames) {
		return entity.Frame{}, false
	}
	f := s.frames[s.next]
	s.next++
	return f, f.Image != nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

type finiteSource struct{ *sliceSource }

func (s *sliceSource) consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (f finiteSource) Exhausted() bool { return f.consumed() >= len(f.frames) }

type fakeOpener struct {
	src port.FrameSource
	err error
}

func (o fakeOpener) Open(int) (port.FrameSource, error) {
	return o.src, o.err
}

var blank = image.NewRGBA(image.Rect(0, 0, 640, 480))

func classNamed(name string) entity.ColorClass {
	c, _ := entity.DefaultColorTable().Lookup(name)
	return c
}
