package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the shot database",
	Long: `Run an arbitrary SQL query against the shot database and print results as a table.

Schema overview:
  datasets(id, player_id, player_name, season, season_type, source, imported_at, has_league)
  shots(dataset_id, seq, loc_x, loc_y, made, zone_basic, zone_area, zone_range)
  league_averages(dataset_id, zone_basic, zone_area, zone_range, fg_pct)

Example:
  shotcharts sql "SELECT zone_basic, COUNT(*), AVG(made) FROM shots GROUP BY zone_basic"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "(no rows)")
		return nil
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
