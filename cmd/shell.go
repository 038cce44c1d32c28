package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/aggregator"
	"github.com/pable/go-shotcharts/internal/grid"
	"github.com/pable/go-shotcharts/internal/report"
	"github.com/pable/go-shotcharts/internal/storage"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := cfg.Grid()
	if err != nil {
		return err
	}

	cGreeting.Println("shotcharts shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("shotcharts")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "density":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: density <small|medium|large|bins>")
				continue
			}
			if next, err := shellDensity(args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			} else {
				g = next
				cMuted.Printf("grid is now %.0fx%.1f\n", g.BinsX, g.BinsY)
			}
		case "chart", "zones":
			if len(args) == 0 {
				cError.Fprintf(os.Stderr, "usage: %s <id-prefix>\n", name)
				continue
			}
			shellChart(cmd.Context(), db, g, args[0], name == "zones")
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return scanner.Err()
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored datasets"},
		{"chart <id-prefix>", "bin a dataset and show its busiest cells"},
		{"zones <id-prefix>", "per-zone shooting against the league"},
		{"density <small|medium|large|bins>", "change the grid for this session"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	datasets, err := db.ListDatasets()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(datasets) == 0 {
		cMuted.Println("No datasets stored yet.")
		return
	}
	report.PrintDatasetTable(os.Stdout, datasets)
}

// shellDensity accepts a named density or an explicit bin count.
func shellDensity(arg string) (grid.Config, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n <= 0 {
			return grid.Config{}, fmt.Errorf("bins must be positive, got %d", n)
		}
		return grid.NewWithBins(n), nil
	}
	return grid.New(grid.Density(arg))
}

func shellChart(ctx context.Context, db *storage.DB, g grid.Config, prefix string, zones bool) {
	ds, shots, league, err := loadDataset(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	charts, err := aggregator.BuildAll(ctx, []aggregator.Input{{Shots: shots, League: league}}, g)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", explainBuildError(err))
		return
	}
	chart := charts[0]
	report.PrintChartSummary(os.Stdout, *ds, chart)
	if zones {
		report.PrintZoneTable(os.Stdout, chart.Zones)
		return
	}
	report.PrintCellTable(os.Stdout, chart, 15)
}
