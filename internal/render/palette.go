package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Below-average shooting is blue, league average is pale yellow, above
// average is red.
var comparisonStops = []string{"#4159E1", "#B0E0E6", "#FFFF99", "#EF3330", "#AB2020"}

// Palette maps a value in [Min, Max] onto a multi-stop color gradient
// blended in Lab space.
type Palette struct {
	Min, Max float64
	stops    []colorful.Color
}

// NewPalette builds a palette from hex color stops. It panics on a
// malformed stop, so only use it with constants.
func NewPalette(min, max float64, hexStops ...string) Palette {
	p := Palette{Min: min, Max: max}
	for _, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("render: bad palette color " + h)
		}
		p.stops = append(p.stops, c)
	}
	return p
}

// ComparisonPalette covers the clipped -10..+10 league comparison range.
func ComparisonPalette() Palette {
	return NewPalette(-10, 10, comparisonStops...)
}

// PercentPalette covers the clipped 35..65 zone percentage range.
func PercentPalette() Palette {
	return NewPalette(35, 65, comparisonStops...)
}

// Hex returns the color for v as "#rrggbb". Values outside the range take
// the end colors.
func (p Palette) Hex(v float64) string {
	return p.At(v).Hex()
}

// At returns the color for v.
func (p Palette) At(v float64) colorful.Color {
	n := len(p.stops)
	if n == 0 {
		return colorful.Color{}
	}
	if n == 1 || p.Max <= p.Min {
		return p.stops[0]
	}
	t := (v - p.Min) / (p.Max - p.Min)
	if t <= 0 {
		return p.stops[0]
	}
	if t >= 1 {
		return p.stops[n-1]
	}
	pos := t * float64(n-1)
	i := int(pos)
	if pos == float64(i) {
		return p.stops[i]
	}
	return p.stops[i].BlendLab(p.stops[i+1], pos-float64(i)).Clamped()
}
