package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored datasets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	datasets, err := db.ListDatasets()
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}
	if len(datasets) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored yet. Run 'shotcharts import <file.json>' to add one.")
		return nil
	}
	report.PrintDatasetTable(os.Stdout, datasets)
	return nil
}
