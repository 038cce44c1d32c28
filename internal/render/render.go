// Package render draws a binned shot chart as SVG.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/pable/go-shotcharts/internal/aggregator"
)

// Style is the presentation configuration. It is independent of the grid
// configuration used for binning.
type Style struct {
	Theme     string // "dark" or "light"
	Marker    string // "hexagon" or "circle"
	ImageSize string // "small", "medium" or "large"
}

// Visible plot window in court coordinates.
const (
	viewMinX = -252.0
	viewMaxX = 252.0
	viewMinY = -65.0
	viewMaxY = 424.0
	dpi      = 80.0
)

// geometry holds the derived sizes for one image size.
type geometry struct {
	size       int     // square canvas, in pixels
	titleH     int     // title band above the court
	fontSize   float64 // px
	titleFont  float64 // px
	multiplier float64 // marker area multiplier
}

func geometryFor(imageSize string) geometry {
	switch imageSize {
	case "small":
		return geometry{size: 8 * dpi, titleH: 40, fontSize: 8.5 * dpi / 72, titleFont: 16 * dpi / 72, multiplier: 1}
	case "medium":
		return geometry{size: 12 * dpi, titleH: 60, fontSize: 13 * dpi / 72, titleFont: 24 * dpi / 72, multiplier: 2.5}
	default:
		return geometry{size: 16 * dpi, titleH: 80, fontSize: 17 * dpi / 72, titleFont: 32 * dpi / 72, multiplier: 5}
	}
}

type theme struct{ court, text, lines string }

func themeFor(name string) theme {
	if name == "light" {
		return theme{court: "#AEAEAE", text: "#353638", lines: "#353638"}
	}
	return theme{court: "#36383F", text: "#E8E8FF", lines: "#E8E8FF"}
}

// canvas maps court coordinates to pixels.
type canvas struct {
	*svg.SVG
	geo   geometry
	th    theme
	style Style
	scale float64 // px per court unit
	lw    int
}

func (c *canvas) px(x, y float64) (int, int) {
	sx := (x - viewMinX) * c.scale
	sy := float64(c.geo.titleH) + (viewMaxY-y)*c.scale
	return int(math.Round(sx)), int(math.Round(sy))
}

func (c *canvas) length(v float64) int {
	return int(math.Round(v * c.scale))
}

// Render writes chart as an SVG document. Each occupied cell becomes one
// marker at the cell center, sized by its marker scale and colored by its
// zone comparison with the league (or by zone percentage when the chart has
// no league average).
func Render(w io.Writer, chart *aggregator.Chart, title string, style Style) error {
	if chart == nil {
		return fmt.Errorf("render: nil chart")
	}
	geo := geometryFor(style.ImageSize)
	c := &canvas{
		SVG:   svg.New(w),
		geo:   geo,
		th:    themeFor(style.Theme),
		style: style,
		lw:    int(math.Max(1, math.Round(float64(geo.size)/320))),
	}
	c.scale = float64(geo.size) / (viewMaxX - viewMinX)
	height := geo.titleH + int(math.Ceil((viewMaxY-viewMinY)*c.scale))

	c.Start(geo.size, height)
	c.Title(title)
	c.Rect(0, 0, geo.size, height, "fill:"+c.th.court)
	c.Text(geo.size/2, geo.titleH*2/3, title,
		fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%.1fpx;fill:%s", geo.titleFont, c.th.text))

	c.markers(chart)
	c.court()
	c.frequencyLegend()
	c.efficiencyLegend(chart.HasLeague)
	c.credits()

	c.End()
	return nil
}

func (c *canvas) markers(chart *aggregator.Chart) {
	pal := ComparisonPalette()
	if !chart.HasLeague {
		pal = PercentPalette()
	}
	c.Gstyle("stroke:none")
	for _, cell := range chart.Cells {
		v := cell.ZoneVsLeague
		if !chart.HasLeague {
			v = cell.ZonePct * 100
		}
		c.marker(cell.CenterX, cell.CenterY, cell.MarkerScale*c.geo.multiplier, "fill:"+pal.Hex(v))
	}
	c.Gend()
}

// marker draws a marker whose area is s square points, like a scatter plot.
func (c *canvas) marker(x, y, s float64, style string) {
	if s <= 0 {
		return
	}
	cx, cy := c.px(x, y)
	r := math.Sqrt(s) / 2 * dpi / 72
	if c.style.Marker == "circle" {
		c.Circle(cx, cy, int(math.Max(1, math.Round(r))), style)
		return
	}
	xs := make([]int, 6)
	ys := make([]int, 6)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		xs[i] = cx + int(math.Round(r*math.Cos(a)))
		ys[i] = cy + int(math.Round(r*math.Sin(a)))
	}
	c.Polygon(xs, ys, style)
}

// court draws the half-court lines. Dimensions are in court units (tenths
// of feet) with the hoop at the origin.
func (c *canvas) court() {
	c.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", c.th.lines, c.lw))

	// Hoop and backboard.
	hx, hy := c.px(0, 0)
	c.Circle(hx, hy, c.length(7.5))
	c.rect(-30, -8.5, 60, 1)

	// Outer and inner paint boxes.
	c.rect(-80, -47.5, 160, 190)
	c.rect(-60, -47.5, 120, 190)

	// Free throw circle: solid top, dashed bottom.
	c.arc(0, 142.5, 60, 0, 180)
	c.arc(0, 142.5, 60, 180, 360, fmt.Sprintf("stroke-dasharray:%d,%d", 4*c.lw, 4*c.lw))

	// Restricted area.
	c.arc(0, 0, 40, 0, 180)

	// Corner threes and the arc.
	c.line(-220, -47.5, -220, 90.5)
	c.line(220, -47.5, 220, 90.5)
	c.arc(0, 0, 237.5, 22, 158)

	// Center court.
	c.arc(0, 422.5, 60, 180, 360)
	c.arc(0, 422.5, 20, 180, 360)

	// Baseline, sidelines and half-court line.
	c.rect(-250, -48, 500, 470)
	c.Gend()
}

func (c *canvas) rect(x, y, w, h float64) {
	x0, y0 := c.px(x, y+h)
	c.Rect(x0, y0, c.length(w), c.length(h))
}

func (c *canvas) line(x1, y1, x2, y2 float64) {
	ax, ay := c.px(x1, y1)
	bx, by := c.px(x2, y2)
	c.Line(ax, ay, bx, by)
}

// arc draws a circular arc counter-clockwise (in court orientation) from
// theta1 to theta2 degrees.
func (c *canvas) arc(cx, cy, r, theta1, theta2 float64, style ...string) {
	t1 := theta1 * math.Pi / 180
	t2 := theta2 * math.Pi / 180
	sx, sy := c.px(cx+r*math.Cos(t1), cy+r*math.Sin(t1))
	ex, ey := c.px(cx+r*math.Cos(t2), cy+r*math.Sin(t2))
	sweep := math.Mod(theta2-theta1+360, 360)
	rp := c.length(r)
	// The y axis is flipped, so counter-clockwise on court is clockwise on screen.
	c.Arc(sx, sy, rp, rp, 0, sweep > 180, true, ex, ey, style...)
}

func (c *canvas) text(x, y float64, s string) {
	px, py := c.px(x, y)
	c.Text(px, py, s, fmt.Sprintf("font-family:sans-serif;font-size:%.1fpx;fill:%s", c.geo.fontSize, c.th.text))
}

// Legend marker positions in court coordinates: (x, y, relative size).
var sizeLegend = [][3]float64{
	{-218, 374, 1},
	{-205, 377, 3},
	{-190, 380, 6},
	{-171, 383, 9},
	{-151, 386, 12},
}

var colorLegend = [][2]float64{
	{117, 368},
	{135, 371},
	{153, 374},
	{171, 377},
	{188, 380},
}

func (c *canvas) frequencyLegend() {
	c.text(-240, 360, "Less Frequent")
	for _, it := range sizeLegend {
		c.marker(it[0], it[1], 20*c.geo.multiplier*it[2], "fill:"+c.th.text)
	}
	c.text(-143, 395, "More Frequent")
}

func (c *canvas) efficiencyLegend(hasLeague bool) {
	if hasLeague {
		c.text(70, 410, "Comparison with league average percentage")
		c.text(75, 345, "Below (-10%)")
		c.text(205, 375, "Above (+10%)")
	} else {
		c.text(70, 410, "Zone field goal percentage")
		c.text(75, 345, "35%")
		c.text(205, 375, "65%")
	}
	for i, it := range colorLegend {
		c.marker(it[0], it[1], 300*c.geo.multiplier/5, "fill:"+comparisonStops[i])
	}
}

func (c *canvas) credits() {
	c.text(-220, -58, "shotcharts")
	c.text(170, -58, "Data: nba.com")
}
