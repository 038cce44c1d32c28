package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const playersSetName = "CommonAllPlayers"

// CurrentSeason is the season sent with player listings. The listing covers
// every season when IsOnlyCurrentSeason is 0, so it only has to be valid.
const CurrentSeason = "2024-25"

// Player is one row of the commonallplayers listing.
type Player struct {
	ID       string
	Name     string // DISPLAY_FIRST_LAST
	FromYear string
	ToYear   string
	Team     string // team abbreviation, empty for retired players
}

// FindPlayers looks up players by full name across every season. Exact
// (case-insensitive) name matches are returned when there are any; otherwise
// players whose name contains name. The result is in listing order and empty
// when nobody matches.
func (c *Client) FindPlayers(ctx context.Context, name string) ([]Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("player name is required")
	}
	v := url.Values{}
	v.Set("LeagueID", "00")
	v.Set("Season", CurrentSeason)
	v.Set("IsOnlyCurrentSeason", "0")
	body, err := c.get(ctx, "commonallplayers", v)
	if err != nil {
		return nil, err
	}
	players, err := ParsePlayers(body)
	if err != nil {
		return nil, fmt.Errorf("parse commonallplayers: %w", err)
	}
	return MatchPlayers(players, name), nil
}

// ParsePlayers decodes a commonallplayers document.
func ParsePlayers(data []byte) ([]Player, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	set := resultSet(gjson.ParseBytes(data), playersSetName)
	if !set.Exists() {
		return nil, fmt.Errorf("no %s result set", playersSetName)
	}
	cols, err := columns(set, "PERSON_ID", "DISPLAY_FIRST_LAST")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", playersSetName, err)
	}
	idx := headerIndex(set)
	optional := func(row []gjson.Result, name string) string {
		if j, ok := idx[name]; ok && j < len(row) {
			return row[j].String()
		}
		return ""
	}

	var out []Player
	for _, r := range set.Get("rowSet").Array() {
		row := r.Array()
		if len(row) <= maxIndex(cols) {
			continue
		}
		out = append(out, Player{
			ID:       row[cols[0]].String(),
			Name:     row[cols[1]].String(),
			FromYear: optional(row, "FROM_YEAR"),
			ToYear:   optional(row, "TO_YEAR"),
			Team:     optional(row, "TEAM_ABBREVIATION"),
		})
	}
	return out, nil
}

// MatchPlayers filters players by name, preferring exact matches.
func MatchPlayers(players []Player, name string) []Player {
	name = strings.TrimSpace(name)
	var exact, partial []Player
	for _, p := range players {
		switch {
		case strings.EqualFold(p.Name, name):
			exact = append(exact, p)
		case strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)):
			partial = append(partial, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return partial
}
