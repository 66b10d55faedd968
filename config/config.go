package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"sortline/internal/domain/entity"
)

const (
	ModeColor = "color"
	ModeSize  = "size"

	ScopeClass  = "class"
	ScopeShared = "shared"
)

// ErrInvalid ошибка проверки конфигурации
var ErrInvalid = errors.New("invalid config")

// ClassConfig класс цвета в YAML: нижняя и верхняя граница H, S, V
type ClassConfig struct {
	Name  string `yaml:"name"`
	Lower []int  `yaml:"lower"`
	Upper []int  `yaml:"upper"`
	Zone  int    `yaml:"zone"`
}

// Config структура конфига. Порядок: значения по умолчанию, YAML из CONFIG_FILE, окружение.
type Config struct {
	Camera struct {
		Index          int           `yaml:"index" env:"CAMERA_INDEX"`
		ReplayDir      string        `yaml:"replay_dir" env:"REPLAY_DIR"`
		ReplayInterval time.Duration `yaml:"replay_interval" env:"REPLAY_INTERVAL"`
		Width          int           `yaml:"width" env:"FRAME_WIDTH"`
		Height         int           `yaml:"height" env:"FRAME_HEIGHT"`
	} `yaml:"camera"`

	Vision struct {
		Mode            string        `yaml:"mode" env:"CLASSIFY_MODE"`
		TriggerLineX    int           `yaml:"trigger_line_x" env:"TRIGGER_LINE_X"`
		TriggerOffset   int           `yaml:"trigger_offset" env:"TRIGGER_OFFSET"`
		MinBlobArea     int           `yaml:"min_blob_area" env:"MIN_BLOB_AREA"`
		MorphIterations int           `yaml:"morph_iterations" env:"MORPH_ITERATIONS"`
		Cooldown        time.Duration `yaml:"cooldown" env:"COOLDOWN"`
		CooldownScope   string        `yaml:"cooldown_scope" env:"COOLDOWN_SCOPE"`
	} `yaml:"vision"`

	Size struct {
		Small int    `yaml:"small" env:"SIZE_SMALL"`
		Large int    `yaml:"large" env:"SIZE_LARGE"`
		Label string `yaml:"label" env:"SIZE_LABEL"`
		Class string `yaml:"class" env:"SIZE_CLASS"`
	} `yaml:"size"`

	Serial struct {
		Port   string        `yaml:"port" env:"SERIAL_PORT"`
		Baud   int           `yaml:"baud" env:"SERIAL_BAUD"`
		Settle time.Duration `yaml:"settle" env:"SERIAL_SETTLE"`
	} `yaml:"serial"`

	HTTP struct {
		Addr string `yaml:"addr" env:"HTTP_ADDR"`
	} `yaml:"http"`

	Telegram struct {
		Token string `yaml:"token" env:"TELEGRAM_TOKEN"`
	} `yaml:"telegram"`

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" envSeparator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC"`
	} `yaml:"kafka"`

	Events struct {
		EventBuffer int `yaml:"event_buffer" env:"EVENT_BUFFER"`
		FrameBuffer int `yaml:"frame_buffer" env:"FRAME_BUFFER"`
		HistorySize int `yaml:"history_size" env:"HISTORY_SIZE"`
	} `yaml:"events"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Classes []ClassConfig `yaml:"classes"`
}

// Default конфигурация линии по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.Camera.ReplayInterval = 33 * time.Millisecond
	cfg.Camera.Width = 640
	cfg.Camera.Height = 480

	cfg.Vision.Mode = ModeColor
	cfg.Vision.TriggerLineX = 320
	cfg.Vision.TriggerOffset = 20
	cfg.Vision.MinBlobArea = 1500
	cfg.Vision.MorphIterations = 2
	cfg.Vision.Cooldown = 1500 * time.Millisecond
	cfg.Vision.CooldownScope = ScopeClass

	cfg.Size.Small = 80
	cfg.Size.Large = 150
	cfg.Size.Label = "PIEZA"
	cfg.Size.Class = "NARANJA"

	cfg.Serial.Baud = 115200
	cfg.Serial.Settle = 2 * time.Second

	cfg.Kafka.Topic = "sortline.events"

	cfg.Events.EventBuffer = 64
	cfg.Events.FrameBuffer = 2
	cfg.Events.HistorySize = 20

	cfg.LogLevel = "info"
	cfg.Classes = classesFromTable(entity.DefaultColorTable())
	return cfg
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Переменные окружения имеют приоритет над файлом
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Vision.Mode = strings.ToLower(strings.TrimSpace(c.Vision.Mode))
	c.Vision.CooldownScope = strings.ToLower(strings.TrimSpace(c.Vision.CooldownScope))
	// в режиме размера все области делят одно остывание
	if c.Vision.Mode == ModeSize {
		c.Vision.CooldownScope = ScopeShared
	}
	c.Kafka.Brokers = lo.Compact(lo.Map(c.Kafka.Brokers, func(b string, _ int) string {
		return strings.TrimSpace(b)
	}))
}

// Validate проверяет конфигурацию до старта любых горутин
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		fail("frame size %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.ReplayInterval < 0 {
		fail("replay interval %s", c.Camera.ReplayInterval)
	}

	if !lo.Contains([]string{ModeColor, ModeSize}, c.Vision.Mode) {
		fail("classify mode %q", c.Vision.Mode)
	}
	if c.Vision.TriggerOffset <= 0 {
		fail("trigger offset must be positive, got %d", c.Vision.TriggerOffset)
	}
	if c.Vision.TriggerLineX < 0 || (c.Camera.Width > 0 && c.Vision.TriggerLineX >= c.Camera.Width) {
		fail("trigger line x %d outside frame width %d", c.Vision.TriggerLineX, c.Camera.Width)
	}
	if c.Vision.MinBlobArea < 0 {
		fail("min blob area %d", c.Vision.MinBlobArea)
	}
	if c.Vision.MorphIterations < 0 {
		fail("morph iterations %d", c.Vision.MorphIterations)
	}
	if c.Vision.Cooldown < 0 {
		fail("cooldown %s", c.Vision.Cooldown)
	}
	if !lo.Contains([]string{ScopeClass, ScopeShared}, c.Vision.CooldownScope) {
		fail("cooldown scope %q", c.Vision.CooldownScope)
	}

	if c.Vision.Mode == ModeSize {
		if c.Size.Small <= 0 || c.Size.Small >= c.Size.Large {
			fail("size thresholds must satisfy 0 < small < large, got %d and %d", c.Size.Small, c.Size.Large)
		}
		if c.Size.Label == "" {
			fail("size label is empty")
		}
		if strings.TrimSpace(c.Size.Class) == "" {
			fail("size class is empty")
		}
	}

	table, err := c.ColorTable()
	if err != nil {
		errs = append(errs, err)
	} else {
		if err := table.Validate(c.Vision.Mode == ModeColor); err != nil {
			fail("%v", err)
		}
		if c.Vision.Mode == ModeSize && strings.TrimSpace(c.Size.Class) != "" {
			if _, ok := table.Lookup(strings.ToUpper(strings.TrimSpace(c.Size.Class))); !ok {
				fail("size class %q is not a configured color class", c.Size.Class)
			}
		}
	}

	if c.Serial.Baud <= 0 {
		fail("serial baud %d", c.Serial.Baud)
	}
	if c.Serial.Settle < 0 {
		fail("serial settle %s", c.Serial.Settle)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		fail("kafka topic is empty")
	}
	if c.Events.EventBuffer < 1 || c.Events.FrameBuffer < 1 || c.Events.HistorySize < 1 {
		fail("event buffer %d, frame buffer %d and history size %d must be positive",
			c.Events.EventBuffer, c.Events.FrameBuffer, c.Events.HistorySize)
	}
	if _, err := c.Level(); err != nil {
		fail("log level %q", c.LogLevel)
	}

	return errors.Join(errs...)
}

// ColorTable собирает таблицу классов из конфигурации
func (c *Config) ColorTable() (entity.ColorTable, error) {
	table := make(entity.ColorTable, 0, len(c.Classes))
	for _, cc := range c.Classes {
		lower, err := toHSV(cc.Lower)
		if err != nil {
			return nil, fmt.Errorf("%w: class %q lower: %v", ErrInvalid, cc.Name, err)
		}
		upper, err := toHSV(cc.Upper)
		if err != nil {
			return nil, fmt.Errorf("%w: class %q upper: %v", ErrInvalid, cc.Name, err)
		}
		table = append(table, entity.ColorClass{
			Name:  strings.ToUpper(strings.TrimSpace(cc.Name)),
			Range: entity.HSVRange{Lower: lower, Upper: upper},
			Zone:  cc.Zone,
		})
	}
	return table, nil
}

// SegmentClasses классы, которые сегментируются в кадре.
// В режиме размера это только SIZE_CLASS.
func (c *Config) SegmentClasses() entity.ColorTable {
	table, err := c.ColorTable()
	if err != nil {
		return nil
	}
	if c.Vision.Mode == ModeSize {
		if cls, ok := table.Lookup(strings.ToUpper(strings.TrimSpace(c.Size.Class))); ok {
			return entity.ColorTable{cls}
		}
		return nil
	}
	return table
}

// TriggerLine линия срабатывания
func (c *Config) TriggerLine() entity.TriggerLine {
	return entity.TriggerLine{X: c.Vision.TriggerLineX, Offset: c.Vision.TriggerOffset}
}

// Level уровень логирования для slog
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}

// Replay включён ли повтор записи вместо камеры
func (c *Config) Replay() bool {
	return c.Camera.ReplayDir != ""
}

func toHSV(v []int) (entity.HSV, error) {
	if len(v) != 3 {
		return entity.HSV{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	for _, x := range v {
		if x < 0 || x > 255 {
			return entity.HSV{}, fmt.Errorf("component %d outside 0..255", x)
		}
	}
	return entity.HSV{H: uint8(v[0]), S: uint8(v[1]), V: uint8(v[2])}, nil
}

func classesFromTable(t entity.ColorTable) []ClassConfig {
	return lo.Map(t, func(c entity.ColorClass, _ int) ClassConfig {
		return ClassConfig{
			Name:  c.Name,
			Lower: []int{int(c.Range.Lower.H), int(c.Range.Lower.S), int(c.Range.Lower.V)},
			Upper: []int{int(c.Range.Upper.H), int(c.Range.Upper.S), int(c.Range.Upper.V)},
			Zone:  c.Zone,
		}
	})
}
