// Package aggregator bins shots into grid cells and derives per-cell
// statistics compared against a league-average baseline.
//
// Every call works on fresh tables: one pass over the shots fills the cell
// and zone tables, a second pass reads them to annotate each shot. Nothing is
// retained between calls, so independent datasets can be processed
// concurrently.
package aggregator

import (
	"github.com/pable/go-shotcharts/internal/grid"
	"github.com/pable/go-shotcharts/internal/model"
)

// Chart is the full result of binning one dataset.
type Chart struct {
	Grid             grid.Config
	Shots            []model.AnnotatedShot // same length and order as the input
	Cells            []model.CellSummary   // first-seen order
	Zones            []model.ZoneSummary   // first-seen order
	MaxNonRestricted int
	HasLeague        bool
}

// tables holds the aggregation state of a single call.
type tables struct {
	cfg       grid.Config
	shotCells []model.Cell // cell of each input shot, by index
	cells     map[model.Cell]*model.CellStats
	cellOrder []model.Cell
	zones     map[model.ZoneKey]*model.ZoneStats
	zoneOrder []model.ZoneKey

	// maxNonRestricted is the highest attempt count among cells whose
	// dominant zone is not the restricted area.
	maxNonRestricted int
}

// tally runs the accumulation pass.
func tally(shots []model.Shot, cfg grid.Config) *tables {
	t := &tables{
		cfg:       cfg,
		shotCells: make([]model.Cell, len(shots)),
		cells:     make(map[model.Cell]*model.CellStats),
		zones:     make(map[model.ZoneKey]*model.ZoneStats),
	}

	for i, s := range shots {
		key := cfg.Cell(s.LocX, s.LocY)
		t.shotCells[i] = key

		cs, ok := t.cells[key]
		if !ok {
			cs = model.NewCellStats()
			t.cells[key] = cs
			t.cellOrder = append(t.cellOrder, key)
		}
		cs.Add(s.Zone, s.Made)

		zs, ok := t.zones[s.Zone]
		if !ok {
			zs = &model.ZoneStats{}
			t.zones[s.Zone] = zs
			t.zoneOrder = append(t.zoneOrder, s.Zone)
		}
		zs.Attempts++
		if s.Made {
			zs.Made++
		}
	}

	for _, key := range t.cellOrder {
		cs := t.cells[key]
		if cs.Dominant().IsRestricted() {
			continue
		}
		if cs.Attempts > t.maxNonRestricted {
			t.maxNonRestricted = cs.Attempts
		}
	}
	return t
}

// zonePct returns the percentage of the cell's dominant zone.
func (t *tables) zonePct(cs *model.CellStats) float64 {
	zs, ok := t.zones[cs.Dominant()]
	if !ok {
		return 0
	}
	return zs.Pct()
}

// markerScale caps the cell volume at maxNonRestricted so the cells under
// the basket do not dwarf the rest of the court, then scales it to the
// maximum cell area. maxNonRestricted must be positive.
func (t *tables) markerScale(cs *model.CellStats) float64 {
	v := cs.Attempts
	if v > t.maxNonRestricted {
		v = t.maxNonRestricted
	}
	return float64(v) / float64(t.maxNonRestricted) * t.cfg.MaxCellArea()
}
