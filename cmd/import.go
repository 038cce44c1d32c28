package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/nbastats"
)

var (
	importMirrorX    bool
	importPlayerName string
)

var importCmd = &cobra.Command{
	Use:   "import <shotchart.json>...",
	Short: "Import shotchartdetail JSON files",
	Long: `Import one or more files in the stats.nba.com shotchartdetail format.
Shots and the league averages carried in the file are stored; re-importing
the same file is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importMirrorX, "mirror-x", false, "negate LOC_X (default from config mirror_x)")
	importCmd.Flags().StringVar(&importPlayerName, "name", "", "player name to store when the file has none")
}

func runImport(cmd *cobra.Command, args []string) error {
	mirror := cfg.MirrorX
	if cmd.Flags().Changed("mirror-x") {
		mirror = importMirrorX
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		id := datasetID(raw, mirror)
		if existing, err := db.GetDatasetByPrefix(id); err != nil {
			return fmt.Errorf("check dataset: %w", err)
		} else if existing != nil {
			logf("%s already stored as %s\n", path, id[:8])
			continue
		}

		sc, err := nbastats.Parse(raw, nbastats.ParseOptions{MirrorX: mirror})
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if sc.PlayerName == "" {
			sc.PlayerName = importPlayerName
		}

		logf("Importing %s...\n", path)
		ds, err := ingest(db, sc, id, "file:"+filepath.Base(path), g)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s  %s  %d shots\n", ds.ID[:8], ds.Label(), ds.ShotCount)
	}
	return nil
}
