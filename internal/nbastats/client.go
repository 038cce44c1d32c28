package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the root endpoint of the stats.nba.com API.
const DefaultBaseURL = "https://stats.nba.com/stats"

// The API rejects requests that do not look like they come from the
// nba.com site.
var defaultHeaders = map[string]string{
	"User-Agent":         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Referer":            "https://www.nba.com/",
	"Origin":             "https://www.nba.com",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

// Client is a minimal stats.nba.com client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL; an empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ShotChartQuery selects the shots to fetch.
type ShotChartQuery struct {
	PlayerID   string
	Season     string // e.g. "2017-18"
	SeasonType string // "Regular Season", "Playoffs", ...
}

func (q ShotChartQuery) values() url.Values {
	v := url.Values{}
	v.Set("PlayerID", q.PlayerID)
	v.Set("Season", q.Season)
	seasonType := q.SeasonType
	if seasonType == "" {
		seasonType = "Regular Season"
	}
	v.Set("SeasonType", seasonType)
	v.Set("ContextMeasure", "FGA")
	v.Set("LeagueID", "00")
	v.Set("TeamID", "0")
	v.Set("GameID", "")
	v.Set("LastNGames", "0")
	v.Set("Month", "0")
	v.Set("OpponentTeamID", "0")
	v.Set("Period", "0")
	v.Set("PlayerPosition", "")
	v.Set("RookieYear", "")
	v.Set("DateFrom", "")
	v.Set("DateTo", "")
	v.Set("Location", "")
	v.Set("Outcome", "")
	v.Set("SeasonSegment", "")
	v.Set("VsConference", "")
	v.Set("VsDivision", "")
	v.Set("GameSegment", "")
	v.Set("AheadBehind", "")
	v.Set("ClutchTime", "")
	v.Set("PointDiff", "")
	v.Set("RangeType", "")
	return v
}

// FetchShotChart downloads the raw shotchartdetail document for a player.
func (c *Client) FetchShotChart(ctx context.Context, q ShotChartQuery) ([]byte, error) {
	if q.PlayerID == "" {
		return nil, fmt.Errorf("player id is required")
	}
	return c.get(ctx, "shotchartdetail", q.values())
}

// get issues a GET against one endpoint and returns the body of a 200 reply.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	return body, nil
}
