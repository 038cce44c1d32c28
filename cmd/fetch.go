package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotcharts/internal/nbastats"
)

var (
	fetchSeason     string
	fetchSeasonType string
	fetchSave       string
)

// fetchCmd downloads a player's shot chart from stats.nba.com and stores it.
var fetchCmd = &cobra.Command{
	Use:   "fetch <player-id | player name>",
	Short: "Download and import a player's shot chart from stats.nba.com",
	Long: `Fetches the shotchartdetail document for a player and season, then
imports it exactly like 'import' would. A non-numeric argument is looked up
as a full player name; when several players match, the first is used.

Examples:
  shotcharts fetch 201566 --season 2017-18
  shotcharts fetch Russell Westbrook --season 2017-18
  shotcharts fetch 201566 --season 2017-18 --season-type Playoffs --save westbrook.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSeason, "season", "", "season, e.g. 2017-18 (required)")
	fetchCmd.Flags().StringVar(&fetchSeasonType, "season-type", "Regular Season", "Regular Season, Playoffs, ...")
	fetchCmd.Flags().StringVar(&fetchSave, "save", "", "also write the raw JSON response to this path")
	_ = fetchCmd.MarkFlagRequired("season")
}

func runFetch(cmd *cobra.Command, args []string) error {
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	client := nbastats.NewClient(cfg.BaseURL)
	player, err := resolvePlayer(cmd.Context(), client, strings.Join(args, " "))
	if err != nil {
		return err
	}
	q := nbastats.ShotChartQuery{PlayerID: player.ID, Season: fetchSeason, SeasonType: fetchSeasonType}
	logf("Fetching %s %s (%s)...\n", q.PlayerID, q.Season, q.SeasonType)
	raw, err := client.FetchShotChart(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("fetch shot chart: %w", err)
	}
	if fetchSave != "" {
		if err := os.WriteFile(fetchSave, raw, 0644); err != nil {
			return fmt.Errorf("save response: %w", err)
		}
		logf("Saved response to %s\n", fetchSave)
	}

	sc, err := nbastats.Parse(raw, nbastats.ParseOptions{MirrorX: cfg.MirrorX})
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	// The request parameters are authoritative when the response omits them.
	if sc.PlayerID == "" {
		sc.PlayerID = q.PlayerID
	}
	if sc.PlayerName == "" {
		sc.PlayerName = player.Name
	}
	if sc.Season == "" {
		sc.Season = q.Season
	}
	if sc.SeasonType == "" {
		sc.SeasonType = q.SeasonType
	}

	ds, err := ingest(db, sc, datasetID(raw, cfg.MirrorX), "nba.com", g)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s  %s  %d shots\n", ds.ID[:8], ds.Label(), ds.ShotCount)
	return nil
}

// resolvePlayer turns a numeric id or a full name into a player. A name with
// no match is an error; with several, the first listed player wins.
func resolvePlayer(ctx context.Context, client *nbastats.Client, arg string) (nbastats.Player, error) {
	arg = strings.TrimSpace(arg)
	if _, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return nbastats.Player{ID: arg}, nil
	}
	logf("Looking up %q...\n", arg)
	players, err := client.FindPlayers(ctx, arg)
	if err != nil {
		return nbastats.Player{}, fmt.Errorf("find player: %w", err)
	}
	if len(players) == 0 {
		return nbastats.Player{}, fmt.Errorf("no players found for %q", arg)
	}
	if len(players) > 1 {
		warnf("%d players match %q, using %s (%s)\n", len(players), arg, players[0].Name, players[0].ID)
	}
	return players[0], nil
}
