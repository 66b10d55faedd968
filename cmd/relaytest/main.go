// relaytest отправляет команду контроллеру реле с фиксированным интервалом
// и печатает всё, что он отвечает. Нужен для проверки проводки без камеры.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"sortline/internal/domain/entity"
	"sortline/internal/infrastructure/relay"
)

type options struct {
	Port     string        `env:"SERIAL_PORT" envDefault:"/dev/ttyUSB0"`
	Baud     int           `env:"SERIAL_BAUD" envDefault:"115200"`
	Settle   time.Duration `env:"SERIAL_SETTLE" envDefault:"2s"`
	Command  string        `env:"RELAY_COMMAND" envDefault:"1"`
	Interval time.Duration `env:"RELAY_INTERVAL" envDefault:"3s"`
}

func main() {
	_ = godotenv.Load()

	var opts options
	if err := env.Parse(&opts); err != nil {
		log.Fatalf("Failed to parse env: %v", err)
	}

	cmd, err := entity.ParseCommand(opts.Command)
	if err != nil {
		log.Fatalf("Bad RELAY_COMMAND: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := relay.Open(opts.Port, opts.Baud, opts.Settle, nil)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", opts.Port, err)
	}

	go func() {
		for {
			line, err := d.ReadLine()
			if err != nil {
				return
			}
			log.Printf("<- %s", line)
		}
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	log.Printf("Sending %q to %s every %s", cmd, opts.Port, opts.Interval)
	for {
		d.SendCommand(cmd)
		log.Printf("-> %s", cmd)

		select {
		case <-ctx.Done():
			if err := d.Close(); err != nil {
				log.Printf("Close: %v", err)
			}
			return
		case <-ticker.C:
		}
	}
}
