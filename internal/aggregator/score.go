package aggregator

import (
	"github.com/pable/go-shotcharts/internal/model"
)

// Clip bounds compress the comparison fields into a fixed color range.
const (
	VsLeagueMin = -10.0 // percentage points
	VsLeagueMax = 10.0
	ZonePctMin  = 35.0 // percent
	ZonePctMax  = 65.0
)

// clip constrains v to [lo, hi].
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// compare builds the league comparison for one shot. The baseline is looked
// up with the shot's own zone; cellPct and zonePct come from its cell.
func compare(zone model.ZoneKey, cellPct, zonePct float64, league model.LeagueAverage) (*model.Comparison, error) {
	leaguePct, ok := league[zone]
	if !ok {
		return nil, &MissingBaselineError{Zone: zone}
	}
	return &model.Comparison{
		CellVsLeague:   clip((cellPct-leaguePct)*100, VsLeagueMin, VsLeagueMax),
		ZoneVsLeague:   clip((zonePct-leaguePct)*100, VsLeagueMin, VsLeagueMax),
		ZonePctClipped: clip(zonePct*100, ZonePctMin, ZonePctMax),
	}, nil
}
