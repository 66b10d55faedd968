package app

import (
	"fmt"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// ColorZones зона по имени класса цвета
type ColorZones struct {
	zones map[string]int
}

// NewColorZones строит таблицу зон из проверенной таблицы цветов
func NewColorZones(table entity.ColorTable) *ColorZones {
	zones := make(map[string]int, len(table))
	for _, c := range table {
		zones[c.Name] = c.Zone
	}
	return &ColorZones{zones: zones}
}

// Classify возвращает метку класса, высоту области и зону
func (z *ColorZones) Classify(class entity.ColorClass, blob entity.Blob) (port.Classification, error) {
	zone, ok := z.zones[class.Name]
	if !ok {
		return port.Classification{}, fmt.Errorf("color %q has no zone", class.Name)
	}
	return port.Classification{Label: class.Name, Measurement: blob.Height, Zone: zone}, nil
}

// SizeZones зона по высоте объекта: h < Small -> 1, h < Large -> 2, иначе 3
type SizeZones struct {
	Small int
	Large int
	Label string
}

// NewSizeZones создаёт классификатор по размеру
func NewSizeZones(small, large int, label string) *SizeZones {
	return &SizeZones{Small: small, Large: large, Label: label}
}

// Classify классифицирует по высоте ограничивающего прямоугольника
func (z *SizeZones) Classify(_ entity.ColorClass, blob entity.Blob) (port.Classification, error) {
	h := blob.Height
	zone := 3
	switch {
	case h < z.Small:
		zone = 1
	case h < z.Large:
		zone = 2
	}
	return port.Classification{Label: z.Label, Measurement: h, Zone: zone}, nil
}

var (
	_ port.ZoneClassifier = (*ColorZones)(nil)
	_ port.ZoneClassifier = (*SizeZones)(nil)
)
