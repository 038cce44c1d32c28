package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pable/go-shotcharts/internal/aggregator"
	"github.com/pable/go-shotcharts/internal/grid"
	"github.com/pable/go-shotcharts/internal/model"
	"github.com/pable/go-shotcharts/internal/nbastats"
	"github.com/pable/go-shotcharts/internal/storage"
)

func TestDatasetID_Stable(t *testing.T) {
	raw := []byte(`{"resultSets":[]}`)
	if datasetID(raw, false) != datasetID(raw, false) {
		t.Error("same document should give the same id")
	}
	if datasetID(raw, false) == datasetID(raw, true) {
		t.Error("mirroring should change the id")
	}
	if datasetID(raw, false) == datasetID([]byte(`{}`), false) {
		t.Error("different documents should give different ids")
	}
}

func TestIngest_DropsOffGridShots(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	db, err := storage.Open(filepath.Join(t.TempDir(), "shots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	zone := model.ZoneKey{Basic: "Mid-Range", Area: "Center(C)", Range: "8-16 ft."}
	sc := &nbastats.ShotChart{
		PlayerID: "201566",
		Season:   "2017-18",
		Shots: []model.Shot{
			{LocX: 0, LocY: 100, Made: true, Zone: zone},
			{LocX: 300, LocY: 100, Made: true, Zone: zone},
			{LocX: 0, LocY: 500, Made: false, Zone: zone},
		},
	}
	g, err := grid.New(grid.DensityMedium)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	ds, err := ingest(db, sc, "0000aaaa-test", "test", g)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if ds.ShotCount != 1 {
		t.Errorf("ShotCount = %d, want 1", ds.ShotCount)
	}
	shots, err := db.GetShots(ds.ID)
	if err != nil {
		t.Fatalf("GetShots: %v", err)
	}
	if len(shots) != 1 || shots[0].LocX != 0 {
		t.Errorf("stored shots = %+v, want the single on-court shot", shots)
	}
}

func TestShellDensity(t *testing.T) {
	g, err := shellDensity("30")
	if err != nil || g.BinsX != 30 {
		t.Errorf("shellDensity(30) = %v, %v", g.BinsX, err)
	}
	if _, err := shellDensity("0"); err == nil {
		t.Error("expected error for zero bins")
	}
	if _, err := shellDensity("huge"); err == nil {
		t.Error("expected error for unknown density")
	}
	g, err = shellDensity("large")
	if err != nil || g.BinsX <= 30 {
		t.Errorf("shellDensity(large) = %v, %v", g.BinsX, err)
	}
}

func TestIngest_EmptyLeagueStillFailsAfterReload(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	db, err := storage.Open(filepath.Join(t.TempDir(), "shots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	zone := model.ZoneKey{Basic: "Mid-Range", Area: "Center(C)", Range: "8-16 ft."}
	sc := &nbastats.ShotChart{
		PlayerID: "201566",
		Shots:    []model.Shot{{LocX: 0, LocY: 100, Made: true, Zone: zone}},
		League:   model.LeagueAverage{},
	}
	g := grid.NewWithBins(30)
	if _, err := ingest(db, sc, "0000bbbb-empty", "test", g); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	_, shots, league, err := loadDataset(db, "0000bbbb")
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}
	if league == nil {
		t.Fatal("empty league table should reload as an empty map, not nil")
	}
	_, err = aggregator.Build(shots, league, g)
	if !errors.Is(err, aggregator.ErrMissingBaseline) {
		t.Errorf("Build after reload = %v, want ErrMissingBaseline", err)
	}
}

func TestResolvePlayer(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"name":"CommonAllPlayers",
			"headers":["PERSON_ID","DISPLAY_FIRST_LAST"],
			"rowSet":[[1628404,"Anthony Davis"],[977,"Antonio Davis"],[201566,"Russell Westbrook"]]}]}`))
	}))
	defer srv.Close()
	client := nbastats.NewClient(srv.URL)
	ctx := context.Background()

	p, err := resolvePlayer(ctx, client, "201566")
	if err != nil || p.ID != "201566" {
		t.Errorf("numeric id = %+v, %v", p, err)
	}
	p, err = resolvePlayer(ctx, client, "russell westbrook")
	if err != nil || p.ID != "201566" || p.Name != "Russell Westbrook" {
		t.Errorf("full name = %+v, %v", p, err)
	}
	p, err = resolvePlayer(ctx, client, "Davis")
	if err != nil || p.ID != "1628404" {
		t.Errorf("several matches should use the first, got %+v, %v", p, err)
	}
	if _, err := resolvePlayer(ctx, client, "Nobody Here"); err == nil {
		t.Error("expected error when no player matches")
	}
}
