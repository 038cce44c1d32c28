package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/aggregator"
	"github.com/pable/go-shotcharts/internal/report"
)

var zonesCmd = &cobra.Command{
	Use:   "zones <id-prefix>",
	Short: "Show per-zone shooting against the league average",
	Args:  cobra.ExactArgs(1),
	RunE:  runZones,
}

func runZones(cmd *cobra.Command, args []string) error {
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, shots, league, err := loadDataset(db, args[0])
	if err != nil {
		return err
	}
	chart, err := aggregator.Build(shots, league, g)
	if err != nil {
		return explainBuildError(err)
	}
	report.PrintChartSummary(os.Stdout, *ds, chart)
	report.PrintZoneTable(os.Stdout, chart.Zones)
	return nil
}
