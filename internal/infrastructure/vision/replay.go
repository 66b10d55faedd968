package vision

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// DefaultFrameInterval шаг времени между записанными кадрами (~30 кадров/с)
const DefaultFrameInterval = 33 * time.Millisecond

var replayExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// ReplaySource проигрывает каталог записанных кадров в лексическом порядке.
// Время кадра детерминировано: Start + Seq*Interval.
type ReplaySource struct {
	files    []string
	next     int
	size     image.Point
	start    time.Time
	interval time.Duration
}

// OpenReplay открывает каталог кадров. width/height - размер кадров сессии.
func OpenReplay(dir string, width, height int, start time.Time, interval time.Duration) (*ReplaySource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read replay dir %s", dir)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !replayExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no frames in %s", dir)
	}
	sort.Strings(files)

	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &ReplaySource{
		files:    files,
		size:     image.Pt(width, height),
		start:    start,
		interval: interval,
	}, nil
}

// Len число кадров в записи
func (r *ReplaySource) Len() int {
	return len(r.files)
}

// Read загружает следующий файл; битый файл - пропуск итерации
func (r *ReplaySource) Read() (entity.Frame, bool) {
	if r.Exhausted() {
		return entity.Frame{}, false
	}
	seq := int64(r.next)
	path := r.files[r.next]
	r.next++

	img, err := imaging.Open(path)
	if err != nil {
		return entity.Frame{}, false
	}
	if b := img.Bounds(); r.size.X > 0 && r.size.Y > 0 && (b.Dx() != r.size.X || b.Dy() != r.size.Y) {
		img = imaging.Resize(img, r.size.X, r.size.Y, imaging.Linear)
	}

	return entity.Frame{
		Seq:        seq,
		Image:      img,
		CapturedAt: r.start.Add(time.Duration(seq) * r.interval),
	}, true
}

// Exhausted сообщает, что все кадры прочитаны
func (r *ReplaySource) Exhausted() bool {
	return r.next >= len(r.files)
}

// Close ничего не держит открытым
func (r *ReplaySource) Close() error {
	r.next = len(r.files)
	return nil
}

// ReplayOpener открывает каталог вместо камеры; индекс камеры игнорируется
type ReplayOpener struct {
	Dir      string
	Width    int
	Height   int
	Interval time.Duration
}

// Open открывает запись, время первого кадра - момент открытия
func (o ReplayOpener) Open(index int) (port.FrameSource, error) {
	_ = index
	return OpenReplay(o.Dir, o.Width, o.Height, time.Now(), o.Interval)
}

var (
	_ port.FiniteSource = (*ReplaySource)(nil)
	_ port.CameraOpener = ReplayOpener{}
)
