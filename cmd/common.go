package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/pable/go-shotcharts/internal/grid"
	"github.com/pable/go-shotcharts/internal/model"
	"github.com/pable/go-shotcharts/internal/nbastats"
	"github.com/pable/go-shotcharts/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

// datasetNamespace seeds content-derived dataset ids, so importing the same
// document twice yields the same id.
var datasetNamespace = uuid.MustParse("6f1c3f0e-5b0a-4d8e-9a57-1d1b2f0c8e41")

// logf prints a progress line to stderr unless --quiet is set.
func logf(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func warnf(format string, args ...any) {
	cWarn.Fprintf(os.Stderr, "[warn] "+format, args...)
}

// openDB opens the database, creating its directory first.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// datasetID derives a stable id from the raw document and the options that
// change how it was read.
func datasetID(raw []byte, mirrorX bool) string {
	key := append([]byte{}, raw...)
	if mirrorX {
		key = append(key, "|mirror_x"...)
	}
	return uuid.NewSHA1(datasetNamespace, key).String()
}

// ingest drops shots that fall outside the court grid and stores the rest.
func ingest(db *storage.DB, sc *nbastats.ShotChart, id, source string, g grid.Config) (model.Dataset, error) {
	shots := make([]model.Shot, 0, len(sc.Shots))
	for _, s := range sc.Shots {
		if !g.Contains(s.LocX, s.LocY) {
			continue
		}
		shots = append(shots, s)
	}
	if sc.Backcourt > 0 {
		warnf("dropped %d back-court attempts\n", sc.Backcourt)
	}
	if n := len(sc.Shots) - len(shots); n > 0 {
		warnf("dropped %d shots outside the court grid\n", n)
	}
	switch {
	case sc.League == nil:
		warnf("no league averages in source; charts will show raw zone percentages\n")
	case len(sc.League) == 0:
		warnf("league averages table is empty; charting this dataset will fail on the first zone\n")
	}

	ds := model.Dataset{
		ID:         id,
		PlayerID:   sc.PlayerID,
		PlayerName: sc.PlayerName,
		Season:     sc.Season,
		SeasonType: sc.SeasonType,
		Source:     source,
		ImportedAt: time.Now().UTC(),
		ShotCount:  len(shots),
	}
	if err := db.InsertDataset(ds, shots, sc.League); err != nil {
		return ds, fmt.Errorf("insert dataset: %w", err)
	}
	return ds, nil
}

// loadDataset resolves an id prefix and reads the dataset's shots and
// league averages.
func loadDataset(db *storage.DB, prefix string) (*model.Dataset, []model.Shot, model.LeagueAverage, error) {
	ds, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query dataset: %w", err)
	}
	if ds == nil {
		return nil, nil, nil, fmt.Errorf("no dataset found with id prefix %q", prefix)
	}
	shots, err := db.GetShots(ds.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get shots: %w", err)
	}
	league, err := db.GetLeagueAverage(ds.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get league averages: %w", err)
	}
	return ds, shots, league, nil
}
