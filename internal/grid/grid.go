// Package grid maps court coordinates onto a rectangular grid of cells.
//
// Court coordinates follow stats.nba.com: tenths of feet with the basket at
// the origin, x in [-250, 250] and y in [-48.5, 421.5] for the half court.
package grid

import (
	"fmt"
	"math"

	"github.com/pable/go-shotcharts/internal/model"
)

// Court geometry. The binned area is Width x Height; adding NormX/NormY to a
// coordinate moves the lower-left corner of that area to the origin.
const (
	Width  = 500.0
	Height = 470.0
	NormX  = 250.0
	NormY  = 48.5
)

// Density selects the number of cells along the x axis.
type Density string

const (
	DensitySmall  Density = "small"
	DensityMedium Density = "medium"
	DensityLarge  Density = "large"
)

// Bins returns the cell count along x for the density.
func (d Density) Bins() (int, error) {
	switch d {
	case DensitySmall:
		return 20, nil
	case DensityMedium, "":
		return 30, nil
	case DensityLarge:
		return 40, nil
	default:
		return 0, fmt.Errorf("unknown grid density %q (want small, medium or large)", string(d))
	}
}

// Config is the immutable binning configuration.
type Config struct {
	Width, Height float64
	NormX, NormY  float64
	BinsX         float64
	BinsY         float64 // derived from the aspect ratio, usually fractional
}

// New returns the court grid for the given density.
func New(d Density) (Config, error) {
	bins, err := d.Bins()
	if err != nil {
		return Config{}, err
	}
	return NewWithBins(bins), nil
}

// NewWithBins returns the court grid with binsX cells along x. binsX must be
// positive.
func NewWithBins(binsX int) Config {
	bx := float64(binsX)
	return Config{
		Width:  Width,
		Height: Height,
		NormX:  NormX,
		NormY:  NormY,
		BinsX:  bx,
		BinsY:  Height / (Width / bx),
	}
}

// CellWidth returns the width of one cell in court units.
func (c Config) CellWidth() float64 { return c.Width / c.BinsX }

// CellHeight returns the height of one cell in court units.
func (c Config) CellHeight() float64 { return c.Height / c.BinsY }

// MaxCellArea is the largest marker weight a cell can receive: roughly the
// area of one cell, shrunk by one unit per side so neighbours never touch.
func (c Config) MaxCellArea() float64 {
	return (c.CellWidth() - 1) * (c.CellHeight() - 1)
}

// Cell maps a court coordinate to its cell. Coordinates outside the court
// rectangle are not rejected; they produce indices outside [0, bins).
func (c Config) Cell(x, y float64) model.Cell {
	return model.Cell{
		X: bin(x+c.NormX, c.Width, c.BinsX),
		Y: bin(y+c.NormY, c.Height, c.BinsY),
	}
}

func bin(v, span, bins float64) int {
	if v == 0 {
		return 0
	}
	return int(math.Floor(v / span * bins))
}

// Center returns the midpoint of a cell in court coordinates.
func (c Config) Center(cell model.Cell) (x, y float64) {
	x0 := float64(cell.X) * c.Width / c.BinsX
	x1 := float64(cell.X+1) * c.Width / c.BinsX
	y0 := float64(cell.Y) * c.Height / c.BinsY
	y1 := float64(cell.Y+1) * c.Height / c.BinsY
	return (x0+x1)/2 - c.NormX, (y0+y1)/2 - c.NormY
}

// Contains reports whether a court coordinate lies inside the binned
// rectangle. Callers use it to filter shots before aggregation. The right
// and top edges are excluded: LOC_X == 250 floors to bin BinsX, one past the
// last column, so no cell exists for it.
func (c Config) Contains(x, y float64) bool {
	nx, ny := x+c.NormX, y+c.NormY
	return nx >= 0 && nx < c.Width && ny >= 0 && ny < c.Height
}
