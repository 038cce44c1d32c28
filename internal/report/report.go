package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-shotcharts/internal/aggregator"
	"github.com/pable/go-shotcharts/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintChartSummary prints a one-line summary header for a binned dataset.
func PrintChartSummary(w io.Writer, ds model.Dataset, chart *aggregator.Chart) {
	made := 0
	for _, s := range chart.Shots {
		if s.Made {
			made++
		}
	}
	pct := 0.0
	if len(chart.Shots) > 0 {
		pct = float64(made) / float64(len(chart.Shots)) * 100
	}
	league := "no"
	if chart.HasLeague {
		league = "yes"
	}
	fmt.Fprintf(w, "\n%s  |  %s  |  FG %d/%d (%.1f%%)  |  Cells: %d  |  Grid: %.0fx%.1f  |  League avg: %s  |  ID: %s\n\n",
		ds.Label(), ds.SeasonType, made, len(chart.Shots), pct,
		len(chart.Cells), chart.Grid.BinsX, chart.Grid.BinsY, league, shortID(ds.ID))
}

// PrintDatasetTable prints the stored datasets.
func PrintDatasetTable(w io.Writer, datasets []model.Dataset) {
	table := newTable(w)
	table.Header("ID", "PLAYER", "SEASON", "TYPE", "SHOTS", "IMPORTED", "SOURCE")
	for _, d := range datasets {
		name := d.PlayerName
		if name == "" {
			name = d.PlayerID
		}
		table.Append(
			shortID(d.ID),
			name,
			d.Season,
			d.SeasonType,
			strconv.Itoa(d.ShotCount),
			d.ImportedAt.Format("2006-01-02"),
			d.Source,
		)
	}
	table.Render()
}

// PrintZoneTable prints per-zone shooting with the league comparison and a
// 95% confidence interval for the zone percentage.
func PrintZoneTable(w io.Writer, zones []model.ZoneSummary) {
	table := newTable(w)
	table.Header("CODE", "ZONE", "AREA", "RANGE", "FGM", "FGA", "FG%", "95% CI", "LEAGUE%", "DIFF", "SAMPLE")

	for _, z := range zones {
		lo, hi := wilsonCI(z.Made, z.Attempts)
		leaguePct, diff := "—", "—"
		if z.HasLeague {
			leaguePct = fmt.Sprintf("%.1f%%", z.LeaguePct*100)
			diff = fmt.Sprintf("%+.1f", (z.Pct()-z.LeaguePct)*100)
		}
		table.Append(
			z.Zone.Code(),
			z.Zone.Basic,
			z.Zone.Area,
			z.Zone.Range,
			strconv.Itoa(z.Made),
			strconv.Itoa(z.Attempts),
			fmt.Sprintf("%.1f%%", z.Pct()*100),
			fmt.Sprintf("%.0f–%.0f%%", lo*100, hi*100),
			leaguePct,
			diff,
			sampleFlag(z.Attempts),
		)
	}
	table.Render()
}

// PrintCellTable prints the busiest cells, most attempts first. limit <= 0
// prints every cell.
func PrintCellTable(w io.Writer, chart *aggregator.Chart, limit int) {
	cells := make([]model.CellSummary, len(chart.Cells))
	copy(cells, chart.Cells)
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Attempts > cells[j].Attempts
	})
	if limit > 0 && len(cells) > limit {
		cells = cells[:limit]
	}

	table := newTable(w)
	table.Header("CELL", "CENTER", "FGA", "FG%", "DOMINANT", "ZONE%", "VS_LEAGUE", "SCALE")
	for _, c := range cells {
		vs := "—"
		if chart.HasLeague {
			vs = fmt.Sprintf("%+.1f", c.ZoneVsLeague)
		}
		table.Append(
			fmt.Sprintf("%d,%d", c.Cell.X, c.Cell.Y),
			fmt.Sprintf("(%.0f, %.0f)", c.CenterX, c.CenterY),
			strconv.Itoa(c.Attempts),
			fmt.Sprintf("%.0f%%", c.Pct()*100),
			c.Dominant.Code(),
			fmt.Sprintf("%.0f%%", c.ZonePct*100),
			vs,
			fmt.Sprintf("%.1f", c.MarkerScale),
		)
	}
	table.Render()
}

// Attempt counts below which a zone percentage is flagged as noisy.
var sampleBands = []struct {
	min  int
	flag string
}{
	{50, "OK"},
	{20, "LOW"},
	{0, "VERY_LOW"},
}

func sampleFlag(attempts int) string {
	for _, b := range sampleBands {
		if attempts >= b.min {
			return b.flag
		}
	}
	return sampleBands[len(sampleBands)-1].flag
}

// z95 is the two-sided 95% normal quantile.
const z95 = 1.959964

// wilsonCI is the 95% Wilson score interval for made/attempts, as fractions.
// With no attempts the interval is the whole [0, 1] range.
func wilsonCI(made, attempts int) (lo, hi float64) {
	if attempts <= 0 {
		return 0, 1
	}
	n := float64(attempts)
	p := float64(made) / n
	z2n := z95 * z95 / n
	mid := p + z2n/2
	spread := z95 * math.Sqrt(p*(1-p)/n+z2n/(4*n))
	scale := 1 + z2n
	return math.Max(0, (mid-spread)/scale), math.Min(1, (mid+spread)/scale)
}

// PrintQueryResult prints the result of a raw SQL query.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
