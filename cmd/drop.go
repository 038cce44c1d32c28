package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce   bool
	dropDataset string
)

// dropCmd deletes one dataset or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a dataset or the whole shot database",
	Long: `With --dataset, delete one stored dataset and its shots. Without it,
permanently delete the SQLite database; all imported shot charts are lost.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropDataset, "dataset", "", "delete only the dataset with this id prefix")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropDataset != "" {
		return dropOne(dropDataset)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files.
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOne(prefix string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query dataset: %w", err)
	}
	if ds == nil {
		fmt.Fprintf(os.Stderr, "No dataset found with id prefix %q\n", prefix)
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete %s (%s, %d shots).\n", ds.ID[:8], ds.Label(), ds.ShotCount)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteDataset(ds.ID); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted dataset %s\n", ds.ID[:8])
	return nil
}
