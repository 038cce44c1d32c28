package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/aggregator"
	"github.com/pable/go-shotcharts/internal/model"
	"github.com/pable/go-shotcharts/internal/render"
	"github.com/pable/go-shotcharts/internal/report"
)

var (
	chartDensity   string
	chartTheme     string
	chartMarker    string
	chartImageSize string
	chartSVG       bool
	chartCells     int
)

var chartCmd = &cobra.Command{
	Use:   "chart <id-prefix>...",
	Short: "Bin stored datasets onto the court grid",
	Long: `Bins each dataset's shots onto the court grid, compares every cell's
dominant zone with the league average and prints the busiest cells.
With --svg the chart is also rendered to <out_dir>/<id>.svg.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartDensity, "density", "", "grid density: small, medium or large")
	chartCmd.Flags().StringVar(&chartTheme, "theme", "", "court theme: dark or light")
	chartCmd.Flags().StringVar(&chartMarker, "marker", "", "marker shape: hexagon or circle")
	chartCmd.Flags().StringVar(&chartImageSize, "image-size", "", "image size: small, medium or large")
	chartCmd.Flags().BoolVar(&chartSVG, "svg", false, "render each chart to SVG")
	chartCmd.Flags().IntVar(&chartCells, "cells", 15, "number of cells to list (0 = all)")
}

func runChart(cmd *cobra.Command, args []string) error {
	c := *cfg
	if chartDensity != "" {
		c.Density = chartDensity
	}
	if chartTheme != "" {
		c.Theme = chartTheme
	}
	if chartMarker != "" {
		c.Marker = chartMarker
	}
	if chartImageSize != "" {
		c.ImageSize = chartImageSize
	}
	if err := c.Validate(); err != nil {
		return err
	}
	g, err := c.Grid()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	datasets := make([]model.Dataset, 0, len(args))
	inputs := make([]aggregator.Input, 0, len(args))
	for _, prefix := range args {
		ds, shots, league, err := loadDataset(db, prefix)
		if err != nil {
			return err
		}
		datasets = append(datasets, *ds)
		inputs = append(inputs, aggregator.Input{Shots: shots, League: league})
	}

	charts, err := aggregator.BuildAll(cmd.Context(), inputs, g)
	if err != nil {
		return explainBuildError(err)
	}

	style := render.Style{Theme: c.Theme, Marker: c.Marker, ImageSize: c.ImageSize}
	for i, chart := range charts {
		ds := datasets[i]
		report.PrintChartSummary(os.Stdout, ds, chart)
		report.PrintCellTable(os.Stdout, chart, chartCells)

		if !chartSVG {
			continue
		}
		path, err := writeSVG(c.OutDir, ds, chart, style)
		if err != nil {
			return err
		}
		logf("Wrote %s\n", path)
	}
	return nil
}

func writeSVG(dir string, ds model.Dataset, chart *aggregator.Chart, style render.Style) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, ds.ID[:8]+".svg")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	title := ds.Label()
	if ds.SeasonType != "" {
		title += " " + ds.SeasonType
	}
	if err := render.Render(f, chart, title, style); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// explainBuildError adds a hint for the errors a user can act on.
func explainBuildError(err error) error {
	switch {
	case errors.Is(err, aggregator.ErrDegenerateDataset):
		return fmt.Errorf("%w (every non-restricted cell is empty; chart needs shots outside the restricted area)", err)
	case errors.Is(err, aggregator.ErrMissingBaseline):
		return fmt.Errorf("%w (re-import with a file that carries LeagueAverages for every zone)", err)
	}
	return err
}
