package aggregator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-shotcharts/internal/grid"
	"github.com/pable/go-shotcharts/internal/model"
)

// Annotate bins shots on cfg and returns one AnnotatedShot per input shot,
// in input order. league may be nil, in which case Comparison is left nil on
// every shot. The input slice is not modified.
//
// Shots must lie inside the court rectangle (see grid.Config.Contains);
// shots outside it land in out-of-range cells.
func Annotate(shots []model.Shot, league model.LeagueAverage, cfg grid.Config) ([]model.AnnotatedShot, error) {
	chart, err := Build(shots, league, cfg)
	if err != nil {
		return nil, err
	}
	return chart.Shots, nil
}

// Build is Annotate plus per-cell and per-zone summaries.
func Build(shots []model.Shot, league model.LeagueAverage, cfg grid.Config) (*Chart, error) {
	chart := &Chart{
		Grid:      cfg,
		Shots:     make([]model.AnnotatedShot, 0, len(shots)),
		HasLeague: league != nil,
	}
	if len(shots) == 0 {
		return chart, nil
	}

	t := tally(shots, cfg)
	if t.maxNonRestricted == 0 {
		return nil, ErrDegenerateDataset
	}
	chart.MaxNonRestricted = t.maxNonRestricted

	// ---- Pass 2: score, scale and assemble each shot. ----

	firstInCell := make(map[model.Cell]int, len(t.cells))
	for i, s := range shots {
		key := t.shotCells[i]
		cs := t.cells[key]

		a := model.AnnotatedShot{
			Shot:         s,
			Cell:         key,
			CellAttempts: cs.Attempts,
			CellPct:      cs.Pct(),
			ZonePct:      t.zonePct(cs),
			MarkerScale:  t.markerScale(cs),
		}
		a.BinCenterX, a.BinCenterY = cfg.Center(key)

		if league != nil {
			cmp, err := compare(s.Zone, a.CellPct, a.ZonePct, league)
			if err != nil {
				return nil, err
			}
			a.Comparison = cmp
		}
		if _, ok := firstInCell[key]; !ok {
			firstInCell[key] = i
		}
		chart.Shots = append(chart.Shots, a)
	}

	chart.Cells = make([]model.CellSummary, 0, len(t.cellOrder))
	for _, key := range t.cellOrder {
		cs := t.cells[key]
		first := chart.Shots[firstInCell[key]]
		sum := model.CellSummary{
			Cell:        key,
			CenterX:     first.BinCenterX,
			CenterY:     first.BinCenterY,
			Attempts:    cs.Attempts,
			Made:        cs.Made,
			Dominant:    cs.Dominant(),
			ZonePct:     first.ZonePct,
			MarkerScale: first.MarkerScale,
		}
		if first.Comparison != nil {
			sum.ZoneVsLeague = first.Comparison.ZoneVsLeague
		}
		chart.Cells = append(chart.Cells, sum)
	}

	chart.Zones = make([]model.ZoneSummary, 0, len(t.zoneOrder))
	for _, z := range t.zoneOrder {
		zs := t.zones[z]
		lp, ok := league[z]
		chart.Zones = append(chart.Zones, model.ZoneSummary{
			Zone:      z,
			Attempts:  zs.Attempts,
			Made:      zs.Made,
			LeaguePct: lp,
			HasLeague: ok,
		})
	}
	return chart, nil
}

// Input is one dataset for BuildAll.
type Input struct {
	Shots  []model.Shot
	League model.LeagueAverage
}

// BuildAll runs Build for every input concurrently and returns the charts in
// input order. The first error cancels the remaining work.
func BuildAll(ctx context.Context, inputs []Input, cfg grid.Config) ([]*Chart, error) {
	charts := make([]*Chart, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Build(in.Shots, in.League, cfg)
			if err != nil {
				return err
			}
			charts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}
