// calibrate подбирает диапазон HSV без окна: строит маску для диапазона из
// окружения, размыкает её и сохраняет PNG, чтобы границы можно было
// перенести в таблицу классов.
package main

import (
	"fmt"
	"image"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"sortline/internal/domain/entity"
	"sortline/internal/infrastructure/vision"
)

type options struct {
	Input       string `env:"CALIBRATE_INPUT,required"`
	Output      string `env:"CALIBRATE_OUTPUT" envDefault:"mask.png"`
	Lower       []int  `env:"CALIBRATE_LOWER" envDefault:"40,100,100" envSeparator:","`
	Upper       []int  `env:"CALIBRATE_UPPER" envDefault:"90,255,255" envSeparator:","`
	Width       int    `env:"FRAME_WIDTH" envDefault:"640"`
	Height      int    `env:"FRAME_HEIGHT" envDefault:"480"`
	Iterations  int    `env:"MORPH_ITERATIONS" envDefault:"2"`
	MinBlobArea int    `env:"MIN_BLOB_AREA" envDefault:"1500"`
}

type result struct {
	Range  entity.HSVRange
	Pixels int
	Blobs  []entity.Blob
}

func main() {
	_ = godotenv.Load()

	var opts options
	if err := env.Parse(&opts); err != nil {
		log.Fatalf("Failed to parse env: %v", err)
	}

	res, err := run(opts)
	if err != nil {
		log.Fatalf("Calibrate: %v", err)
	}

	log.Printf("Range lower=%v upper=%v", res.Range.Lower, res.Range.Upper)
	log.Printf("Mask %s: %d pixels, %d blobs >= %d", opts.Output, res.Pixels, len(res.Blobs), opts.MinBlobArea)
	for _, b := range res.Blobs {
		log.Printf("  (%d,%d) %dx%d area %d", b.X, b.Y, b.Width, b.Height, b.Area)
	}
}

func run(opts options) (result, error) {
	rng, err := parseRange(opts.Lower, opts.Upper)
	if err != nil {
		return result{}, err
	}

	img, err := imaging.Open(opts.Input)
	if err != nil {
		return result{}, fmt.Errorf("open %s: %w", opts.Input, err)
	}
	if opts.Width > 0 && opts.Height > 0 {
		img = resize(img, opts.Width, opts.Height)
	}

	mask := vision.NewHSVImage(img).InRange(rng).Open(opts.Iterations)
	if err := imaging.Save(mask.Image(), opts.Output); err != nil {
		return result{}, fmt.Errorf("save %s: %w", opts.Output, err)
	}

	return result{
		Range:  rng,
		Pixels: mask.CountNonZero(),
		Blobs:  mask.Blobs(opts.MinBlobArea),
	}, nil
}

func resize(img image.Image, w, h int) image.Image {
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Linear)
}

func parseRange(lower, upper []int) (entity.HSVRange, error) {
	lo, err := toHSV(lower)
	if err != nil {
		return entity.HSVRange{}, fmt.Errorf("lower: %w", err)
	}
	hi, err := toHSV(upper)
	if err != nil {
		return entity.HSVRange{}, fmt.Errorf("upper: %w", err)
	}
	rng := entity.HSVRange{Lower: lo, Upper: hi}
	if err := rng.Validate(); err != nil {
		return entity.HSVRange{}, err
	}
	return rng, nil
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
