// Package nbastats reads shot chart data in the stats.nba.com
// shotchartdetail format, from a file or from the live endpoint.
package nbastats

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pable/go-shotcharts/internal/model"
)

// Result set names inside a shotchartdetail response.
const (
	shotSetName   = "Shot_Chart_Detail"
	leagueSetName = "LeagueAverages"
)

// ShotChart is a decoded shotchartdetail response.
type ShotChart struct {
	PlayerID   string
	PlayerName string
	Season     string
	SeasonType string
	Shots      []model.Shot
	League     model.LeagueAverage // nil if the response has no league averages
	Backcourt  int                 // back-court attempts that were dropped
}

// ParseOptions tweaks how rows are turned into shots.
type ParseOptions struct {
	// MirrorX negates LOC_X. Some endpoints report the court flipped
	// left-to-right relative to the zone labels.
	MirrorX bool
}

// Parse decodes a shotchartdetail JSON document. Back-court attempts are
// dropped since they have no place on the half-court grid.
func Parse(data []byte, opts ParseOptions) (*ShotChart, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	shotSet := resultSet(doc, shotSetName)
	if !shotSet.Exists() {
		return nil, fmt.Errorf("no %s result set", shotSetName)
	}
	cols, err := columns(shotSet, "LOC_X", "LOC_Y", "SHOT_MADE_FLAG",
		"SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shotSetName, err)
	}
	headerIdx := headerIndex(shotSet)

	sc := &ShotChart{
		PlayerID:   doc.Get("parameters.PlayerID").String(),
		Season:     doc.Get("parameters.Season").String(),
		SeasonType: doc.Get("parameters.SeasonType").String(),
	}

	rows := shotSet.Get("rowSet").Array()
	sc.Shots = make([]model.Shot, 0, len(rows))
	for i, row := range rows {
		vals := row.Array()
		if len(vals) <= maxIndex(cols) {
			return nil, fmt.Errorf("%s row %d: expected at least %d columns, got %d",
				shotSetName, i, maxIndex(cols)+1, len(vals))
		}
		zone := model.ZoneKey{
			Basic: vals[cols[3]].String(),
			Area:  vals[cols[4]].String(),
			Range: vals[cols[5]].String(),
		}
		if isBackcourt(zone) {
			sc.Backcourt++
			continue
		}
		x := vals[cols[0]].Float()
		if opts.MirrorX {
			x = -x
		}
		sc.Shots = append(sc.Shots, model.Shot{
			LocX: x,
			LocY: vals[cols[1]].Float(),
			Made: madeFlag(vals[cols[2]]),
			Zone: zone,
		})
		if sc.PlayerName == "" {
			if j, ok := headerIdx["PLAYER_NAME"]; ok && j < len(vals) {
				sc.PlayerName = vals[j].String()
			}
		}
	}

	leagueSet := resultSet(doc, leagueSetName)
	if leagueSet.Exists() {
		league, err := parseLeague(leagueSet)
		if err != nil {
			return nil, err
		}
		sc.League = league
	}
	return sc, nil
}

// ParseLeague decodes only the LeagueAverages result set of a document.
func ParseLeague(data []byte) (model.LeagueAverage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	set := resultSet(gjson.ParseBytes(data), leagueSetName)
	if !set.Exists() {
		return nil, fmt.Errorf("no %s result set", leagueSetName)
	}
	return parseLeague(set)
}

func parseLeague(set gjson.Result) (model.LeagueAverage, error) {
	cols, err := columns(set, "SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "FG_PCT")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", leagueSetName, err)
	}
	league := make(model.LeagueAverage)
	for i, row := range set.Get("rowSet").Array() {
		vals := row.Array()
		if len(vals) <= maxIndex(cols) {
			return nil, fmt.Errorf("%s row %d: short row", leagueSetName, i)
		}
		zone := model.ZoneKey{
			Basic: vals[cols[0]].String(),
			Area:  vals[cols[1]].String(),
			Range: vals[cols[2]].String(),
		}
		// First row wins, matching a first-match table lookup.
		if _, dup := league[zone]; !dup {
			league[zone] = vals[cols[3]].Float()
		}
	}
	return league, nil
}

// resultSet finds a named result set. Responses carry either "resultSets"
// (an array) or a single "resultSet".
func resultSet(doc gjson.Result, name string) gjson.Result {
	for _, set := range doc.Get("resultSets").Array() {
		if set.Get("name").String() == name {
			return set
		}
	}
	if single := doc.Get("resultSet"); single.Get("name").String() == name {
		return single
	}
	return gjson.Result{}
}

func headerIndex(set gjson.Result) map[string]int {
	idx := make(map[string]int)
	for i, h := range set.Get("headers").Array() {
		idx[strings.ToUpper(h.String())] = i
	}
	return idx
}

// columns resolves the positions of the required headers.
func columns(set gjson.Result, names ...string) ([]int, error) {
	idx := headerIndex(set)
	out := make([]int, len(names))
	for i, n := range names {
		j, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("missing column %s", n)
		}
		out[i] = j
	}
	return out, nil
}

func maxIndex(cols []int) int {
	m := 0
	for _, c := range cols {
		if c > m {
			m = c
		}
	}
	return m
}

// madeFlag accepts 0/1 numbers as well as JSON booleans.
func madeFlag(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Int() != 0
	case gjson.String:
		s := strings.TrimSpace(v.String())
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return false
	}
}

func isBackcourt(z model.ZoneKey) bool {
	return z.Basic == "Backcourt" || z.Area == "Back Court(BC)"
}
