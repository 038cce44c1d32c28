package model

import (
	"strings"
	"time"
)

// RestrictedArea is the SHOT_ZONE_BASIC label of the area under the basket.
const RestrictedArea = "Restricted Area"

// ZoneKey identifies a named court region: basic category, directional area
// and distance range, e.g. {"Mid-Range", "Left Side(L)", "8-16 ft."}.
type ZoneKey struct {
	Basic string
	Area  string
	Range string
}

// IsRestricted reports whether the zone is the restricted area.
func (z ZoneKey) IsRestricted() bool {
	return z.Basic == RestrictedArea
}

// Code returns a compact label for the zone: "3L" for a left-side three,
// "PC8" for a center paint shot at 8-16 ft, "ML1" for left mid-range at
// 16-24 ft, "RC" for the restricted area.
func (z ZoneKey) Code() string {
	area := areaCode(z.Area)
	dist := ""
	if z.Range != "" {
		dist = z.Range[:1]
	}
	switch {
	case strings.Contains(z.Basic, "3"):
		return "3" + area
	case strings.Contains(z.Basic, "Paint"):
		return "P" + area + dist
	case strings.Contains(z.Basic, "Mid"):
		return "M" + area + dist
	default:
		return "R" + area
	}
}

// areaCode extracts the text between parentheses: "Right Side Center(RC)" -> "RC".
func areaCode(area string) string {
	open := strings.IndexByte(area, '(')
	if open < 0 {
		return area
	}
	rest := area[open+1:]
	if end := strings.IndexByte(rest, ')'); end >= 0 {
		return rest[:end]
	}
	return rest
}

func (z ZoneKey) String() string {
	return z.Basic + " / " + z.Area + " / " + z.Range
}

// ---- Raw events ----

// Shot is a single field goal attempt in court coordinates (tenths of feet,
// basket at the origin).
type Shot struct {
	LocX, LocY float64
	Made       bool
	Zone       ZoneKey
}

// LeagueAverage maps a zone to the league field goal percentage in [0,1].
// A nil LeagueAverage means no baseline was supplied.
type LeagueAverage map[ZoneKey]float64

// ---- Aggregation tables ----

// Cell is a grid cell key.
type Cell struct{ X, Y int }

// CellStats accumulates attempts for one grid cell, plus a histogram of the
// zone labels observed in it.
type CellStats struct {
	Attempts int
	Made     int
	Zones    map[ZoneKey]int
	order    []ZoneKey // first-seen order of Zones keys
}

// NewCellStats returns an empty CellStats.
func NewCellStats() *CellStats {
	return &CellStats{Zones: make(map[ZoneKey]int)}
}

// Add records one attempt in the given zone.
func (c *CellStats) Add(zone ZoneKey, made bool) {
	c.Attempts++
	if made {
		c.Made++
	}
	if _, seen := c.Zones[zone]; !seen {
		c.order = append(c.order, zone)
	}
	c.Zones[zone]++
}

// Dominant returns the zone with the highest count in the cell. Ties go to
// the zone that was seen first.
func (c *CellStats) Dominant() ZoneKey {
	var best ZoneKey
	bestCount := 0
	for _, z := range c.order {
		if n := c.Zones[z]; n > bestCount {
			best, bestCount = z, n
		}
	}
	return best
}

// Pct returns made/attempts, or 0 for an empty cell.
func (c *CellStats) Pct() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Made) / float64(c.Attempts)
}

// ZoneStats accumulates attempts for one zone.
type ZoneStats struct {
	Attempts int
	Made     int
}

// Pct returns made/attempts, or 0 for a zone without attempts.
func (z ZoneStats) Pct() float64 {
	if z.Attempts == 0 {
		return 0
	}
	return float64(z.Made) / float64(z.Attempts)
}

// ---- Engine output ----

// Comparison holds the league-relative fields of an annotated shot. All
// values are in percentage points and already clipped.
type Comparison struct {
	CellVsLeague   float64
	ZoneVsLeague   float64
	ZonePctClipped float64
}

// AnnotatedShot is a Shot with its binned location and derived statistics.
type AnnotatedShot struct {
	Shot
	Cell         Cell
	BinCenterX   float64
	BinCenterY   float64
	CellAttempts int
	CellPct      float64 // [0,1]
	ZonePct      float64 // [0,1], of the cell's dominant zone
	Comparison   *Comparison
	MarkerScale  float64
}

// CellSummary is one row per occupied grid cell.
type CellSummary struct {
	Cell         Cell
	CenterX      float64
	CenterY      float64
	Attempts     int
	Made         int
	Dominant     ZoneKey
	ZonePct      float64
	MarkerScale  float64
	ZoneVsLeague float64 // of the first shot in the cell; 0 without a baseline
}

// Pct returns the cell field goal percentage.
func (c CellSummary) Pct() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Made) / float64(c.Attempts)
}

// ZoneSummary is one row per zone.
type ZoneSummary struct {
	Zone      ZoneKey
	Attempts  int
	Made      int
	LeaguePct float64
	HasLeague bool
}

// Pct returns the zone field goal percentage.
func (z ZoneSummary) Pct() float64 {
	if z.Attempts == 0 {
		return 0
	}
	return float64(z.Made) / float64(z.Attempts)
}

// ---- Stored datasets ----

// Dataset describes one imported set of shots.
type Dataset struct {
	ID         string
	PlayerID   string
	PlayerName string
	Season     string
	SeasonType string
	Source     string
	ImportedAt time.Time
	ShotCount  int // populated by list queries
}

// Label returns a short human-readable description of the dataset.
func (d Dataset) Label() string {
	name := d.PlayerName
	if name == "" {
		name = d.PlayerID
	}
	if d.Season == "" {
		return name
	}
	return name + " " + d.Season
}
