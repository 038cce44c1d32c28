package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/pable/go-shotcharts/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var (
	zoneRA  = model.ZoneKey{Basic: "Restricted Area", Area: "Center(C)", Range: "Less Than 8 ft."}
	zoneMid = model.ZoneKey{Basic: "Mid-Range", Area: "Left Side(L)", Range: "8-16 ft."}
)

func sampleShots() []model.Shot {
	return []model.Shot{
		{LocX: -4, LocY: 11, Made: true, Zone: zoneRA},
		{LocX: -120, LocY: 40, Made: false, Zone: zoneMid},
		{LocX: 3, LocY: 2, Made: false, Zone: zoneRA},
	}
}

func TestDatasetInsertAndGet(t *testing.T) {
	db := openMemDB(t)

	ds := model.Dataset{
		ID:         "deadbeef-1234",
		PlayerID:   "201566",
		PlayerName: "Russell Westbrook",
		Season:     "2017-18",
		SeasonType: "Regular Season",
		Source:     "westbrook.json",
		ImportedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	league := model.LeagueAverage{zoneRA: 0.62, zoneMid: 0.40}
	if err := db.InsertDataset(ds, sampleShots(), league); err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}

	got, err := db.GetDatasetByPrefix("deadbeef")
	if err != nil {
		t.Fatalf("GetDatasetByPrefix: %v", err)
	}
	if got == nil {
		t.Fatal("expected dataset for prefix")
	}
	if got.PlayerName != "Russell Westbrook" || got.Season != "2017-18" {
		t.Errorf("unexpected dataset: %+v", got)
	}
	if got.ShotCount != 3 {
		t.Errorf("ShotCount = %d, want 3", got.ShotCount)
	}
	if !got.ImportedAt.Equal(ds.ImportedAt) {
		t.Errorf("ImportedAt = %v, want %v", got.ImportedAt, ds.ImportedAt)
	}

	none, err := db.GetDatasetByPrefix("zzz")
	if err != nil {
		t.Fatalf("GetDatasetByPrefix(zzz): %v", err)
	}
	if none != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestShotsRoundTrip_PreservesOrder(t *testing.T) {
	db := openMemDB(t)
	ds := model.Dataset{ID: "a1", ImportedAt: time.Now()}
	shots := sampleShots()
	if err := db.InsertDataset(ds, shots, nil); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetShots("a1")
	if err != nil {
		t.Fatalf("GetShots: %v", err)
	}
	if len(got) != len(shots) {
		t.Fatalf("expected %d shots, got %d", len(shots), len(got))
	}
	for i := range shots {
		if got[i] != shots[i] {
			t.Errorf("shot %d = %+v, want %+v", i, got[i], shots[i])
		}
	}

	league, err := db.GetLeagueAverage("a1")
	if err != nil {
		t.Fatalf("GetLeagueAverage: %v", err)
	}
	if league != nil {
		t.Errorf("expected nil league when none imported, got %v", league)
	}
}

func TestLeagueAverageRoundTrip(t *testing.T) {
	db := openMemDB(t)
	ds := model.Dataset{ID: "b2", ImportedAt: time.Now()}
	if err := db.InsertDataset(ds, sampleShots(), model.LeagueAverage{zoneRA: 0.62, zoneMid: 0.4}); err != nil {
		t.Fatal(err)
	}
	league, err := db.GetLeagueAverage("b2")
	if err != nil {
		t.Fatal(err)
	}
	if len(league) != 2 || league[zoneRA] != 0.62 || league[zoneMid] != 0.4 {
		t.Errorf("unexpected league: %v", league)
	}
}

func TestListDatasets(t *testing.T) {
	db := openMemDB(t)

	old := model.Dataset{ID: "h1", PlayerName: "A", ImportedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := model.Dataset{ID: "h2", PlayerName: "B", ImportedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	for _, d := range []model.Dataset{old, newer} {
		if err := db.InsertDataset(d, sampleShots()[:1], nil); err != nil {
			t.Fatalf("InsertDataset: %v", err)
		}
	}

	list, err := db.ListDatasets()
	if err != nil {
		t.Fatalf("ListDatasets: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(list))
	}
	// Ordered by imported_at DESC, so h2 comes first.
	if list[0].ID != "h2" {
		t.Errorf("expected h2 first (newest), got %s", list[0].ID)
	}
	if list[0].ShotCount != 1 {
		t.Errorf("ShotCount = %d, want 1", list[0].ShotCount)
	}
}

func TestInsertIdempotency(t *testing.T) {
	db := openMemDB(t)
	ds := model.Dataset{ID: "same", ImportedAt: time.Now()}

	if err := db.InsertDataset(ds, sampleShots(), nil); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertDataset(ds, sampleShots()[:2], nil); err != nil {
		t.Fatalf("second insert should replace, got: %v", err)
	}
	shots, err := db.GetShots("same")
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 2 {
		t.Errorf("expected re-import to replace shots, got %d", len(shots))
	}
}

func TestDeleteDataset(t *testing.T) {
	db := openMemDB(t)
	ds := model.Dataset{ID: "gone", ImportedAt: time.Now()}
	if err := db.InsertDataset(ds, sampleShots(), model.LeagueAverage{zoneRA: 0.6}); err != nil {
		t.Fatal(err)
	}

	ok, err := db.DeleteDataset("gone")
	if err != nil || !ok {
		t.Fatalf("DeleteDataset = %v, %v", ok, err)
	}
	shots, _ := db.GetShots("gone")
	if len(shots) != 0 {
		t.Errorf("expected shots to cascade, found %d", len(shots))
	}
	ok, err = db.DeleteDataset("gone")
	if err != nil || ok {
		t.Errorf("second delete = %v, %v; want false, nil", ok, err)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	if err := db.InsertDataset(model.Dataset{ID: "q", ImportedAt: time.Now()}, sampleShots(), nil); err != nil {
		t.Fatal(err)
	}
	cols, rows, err := db.QueryRaw("SELECT zone_basic, COUNT(1) AS n FROM shots GROUP BY zone_basic ORDER BY n DESC")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[1] != "n" {
		t.Errorf("unexpected columns: %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "Restricted Area" || rows[0][1] != "2" {
		t.Errorf("unexpected rows: %v", rows)
	}
	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestLeagueAverage_PresenceSurvivesRoundTrip(t *testing.T) {
	db := openMemDB(t)
	now := time.Now().UTC()

	if err := db.InsertDataset(model.Dataset{ID: "empty-league", ImportedAt: now}, sampleShots(), model.LeagueAverage{}); err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}
	if err := db.InsertDataset(model.Dataset{ID: "no-league", ImportedAt: now}, sampleShots(), nil); err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}

	got, err := db.GetLeagueAverage("empty-league")
	if err != nil {
		t.Fatalf("GetLeagueAverage: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("empty league table should come back empty and non-nil, got %#v", got)
	}

	got, err = db.GetLeagueAverage("no-league")
	if err != nil {
		t.Fatalf("GetLeagueAverage: %v", err)
	}
	if got != nil {
		t.Errorf("dataset without league averages should return nil, got %#v", got)
	}

	if got, err := db.GetLeagueAverage("unknown"); err != nil || got != nil {
		t.Errorf("unknown dataset = %#v, %v; want nil, nil", got, err)
	}
}

func TestGetDatasetByPrefix_LiteralMatch(t *testing.T) {
	db := openMemDB(t)
	if err := db.InsertDataset(model.Dataset{ID: "ab_cd-1", ImportedAt: time.Now()}, nil, nil); err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}

	for _, prefix := range []string{"%", "a%", "ab%d", "a_"} {
		got, err := db.GetDatasetByPrefix(prefix)
		if err != nil {
			t.Fatalf("GetDatasetByPrefix(%q): %v", prefix, err)
		}
		if got != nil {
			t.Errorf("GetDatasetByPrefix(%q) matched %s; wildcards must be literal", prefix, got.ID)
		}
	}
	got, err := db.GetDatasetByPrefix("ab_c")
	if err != nil || got == nil || got.ID != "ab_cd-1" {
		t.Errorf("GetDatasetByPrefix(ab_c) = %+v, %v", got, err)
	}
}

func TestOpen_UpgradesFileWithoutHasLeague(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	raw, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE datasets (id TEXT PRIMARY KEY, player_id TEXT NOT NULL DEFAULT '',
			player_name TEXT NOT NULL DEFAULT '', season TEXT NOT NULL DEFAULT '',
			season_type TEXT NOT NULL DEFAULT '', source TEXT NOT NULL DEFAULT '', imported_at TEXT NOT NULL)`,
		`INSERT INTO datasets(id, imported_at) VALUES ('with', '2025-01-01T00:00:00Z'), ('without', '2025-01-01T00:00:00Z')`,
		`CREATE TABLE league_averages (dataset_id TEXT NOT NULL, zone_basic TEXT NOT NULL,
			zone_area TEXT NOT NULL, zone_range TEXT NOT NULL, fg_pct REAL NOT NULL,
			PRIMARY KEY (dataset_id, zone_basic, zone_area, zone_range))`,
		`INSERT INTO league_averages VALUES ('with', 'Mid-Range', 'Left Side(L)', '8-16 ft.', 0.4)`,
	} {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("seed old schema: %v", err)
		}
	}
	raw.Close()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	got, err := db.GetLeagueAverage("with")
	if err != nil || got[zoneMid] != 0.4 {
		t.Errorf("league after upgrade = %#v, %v", got, err)
	}
	if got, err := db.GetLeagueAverage("without"); err != nil || got != nil {
		t.Errorf("dataset without averages after upgrade = %#v, %v", got, err)
	}
}
