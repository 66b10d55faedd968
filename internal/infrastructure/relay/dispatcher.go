package relay

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

const (
	DefaultBaudRate = 115200
	// DefaultSettle пауза после открытия порта: Arduino перезагружается при подключении
	DefaultSettle = 2 * time.Second
)

// Dispatcher пишет команды в последовательный порт контроллера реле
type Dispatcher struct {
	mu     sync.Mutex
	name   string
	port   io.ReadWriteCloser
	reader *bufio.Reader
	logger *slog.Logger
}

// Open открывает порт и ждёт settle перед первой командой
func Open(name string, baud int, settle time.Duration, logger *slog.Logger) (*Dispatcher, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", name)
	}
	if settle > 0 {
		time.Sleep(settle)
	}

	d := NewDispatcher(p, logger)
	d.name = name
	d.logger.Info("relay controller connected", "port", name, "baud", baud)
	return d, nil
}

// NewDispatcher оборачивает уже открытый порт. nil-порт допустим: команды игнорируются.
func NewDispatcher(p io.ReadWriteCloser, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{port: p, logger: logger}
}

// SendCommand отправляет команду. Ошибки записи только логируются.
func (d *Dispatcher) SendCommand(cmd entity.Command) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port == nil {
		return
	}
	if _, err := d.port.Write([]byte(cmd)); err != nil {
		d.logger.Warn("serial write failed", "port", d.name, "cmd", string(cmd), "err", err)
		return
	}
	d.logger.Debug("serial command sent", "cmd", string(cmd))
}

// ReadLine читает одну строку ответа контроллера
func (d *Dispatcher) ReadLine() (string, error) {
	d.mu.Lock()
	p := d.port
	if p != nil && d.reader == nil {
		d.reader = bufio.NewReader(p)
	}
	r := d.reader
	d.mu.Unlock()

	if p == nil {
		return "", errors.New("serial port is closed")
	}
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "read serial line")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Connected открыт ли порт
func (d *Dispatcher) Connected() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.port != nil
}

// Close закрывает порт; последующие команды игнорируются
func (d *Dispatcher) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port == nil {
		return nil
	}
	err := d.port.Close()
	d.port = nil
	d.reader = nil
	return errors.Wrap(err, "close serial port")
}

var _ port.CommandSender = (*Dispatcher)(nil)
