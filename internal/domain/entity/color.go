package entity

import (
	"errors"
	"fmt"
)

// MaxHue верхняя граница тона в 8-битном HSV (OpenCV)
const MaxHue = 179

// HSV тройка тон/насыщенность/яркость в 8-битном представлении
type HSV struct {
	H uint8
	S uint8
	V uint8
}

// HSVRange замкнутый диапазон HSV. Тон не замыкается через 0.
type HSVRange struct {
	Lower HSV
	Upper HSV
}

// Contains проверяет попадание пикселя во все три интервала
func (r HSVRange) Contains(p HSV) bool {
	return p.H >= r.Lower.H && p.H <= r.Upper.H &&
		p.S >= r.Lower.S && p.S <= r.Upper.S &&
		p.V >= r.Lower.V && p.V <= r.Upper.V
}

// Validate проверяет, что нижняя граница не превышает верхнюю
func (r HSVRange) Validate() error {
	if r.Upper.H > MaxHue || r.Lower.H > MaxHue {
		return fmt.Errorf("hue must be within 0..%d", MaxHue)
	}
	if r.Lower.H > r.Upper.H || r.Lower.S > r.Upper.S || r.Lower.V > r.Upper.V {
		return fmt.Errorf("lower bound %v exceeds upper bound %v", r.Lower, r.Upper)
	}
	return nil
}

// ColorClass именованный класс цвета с диапазоном и зоной назначения
type ColorClass struct {
	Name  string
	Range HSVRange
	Zone  int
}

// ColorTable упорядоченный набор классов, неизменяемый после старта
type ColorTable []ColorClass

// Lookup ищет класс по имени
func (t ColorTable) Lookup(name string) (ColorClass, bool) {
	for _, c := range t {
		if c.Name == name {
			return c, true
		}
	}
	return ColorClass{}, false
}

// Names возвращает имена классов в порядке объявления
func (t ColorTable) Names() []string {
	names := make([]string, 0, len(t))
	for _, c := range t {
		names = append(names, c.Name)
	}
	return names
}

// Validate проверяет диапазоны и уникальность имён.
// withZones требует зону 1..3 у каждого класса.
func (t ColorTable) Validate(withZones bool) error {
	if len(t) == 0 {
		return errors.New("color table is empty")
	}
	seen := make(map[string]struct{}, len(t))
	for _, c := range t {
		if c.Name == "" {
			return errors.New("color class without name")
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate color class %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if err := c.Range.Validate(); err != nil {
			return fmt.Errorf("color class %q: %w", c.Name, err)
		}
		if withZones && !ValidZone(c.Zone) {
			return fmt.Errorf("color class %q: zone %d out of range %d..%d", c.Name, c.Zone, MinZone, MaxZone)
		}
	}
	return nil
}

// DefaultColorTable калибровка линии по умолчанию
func DefaultColorTable() ColorTable {
	return ColorTable{
		{Name: "AZUL", Range: HSVRange{Lower: HSV{100, 150, 50}, Upper: HSV{140, 255, 255}}, Zone: 3},
		{Name: "VERDE", Range: HSVRange{Lower: HSV{40, 100, 100}, Upper: HSV{90, 255, 255}}, Zone: 2},
		// красновато-жёлтые тона
		{Name: "NARANJA", Range: HSVRange{Lower: HSV{0, 186, 118}, Upper: HSV{28, 255, 255}}, Zone: 1},
	}
}
