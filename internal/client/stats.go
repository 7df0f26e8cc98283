package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/analysis"
	"nflprops/analyzer/internal/metrics"
)

// StatsClient fetches player game logs and team defensive totals from the
// stats API. Satisfies the selector's stats provider.
type StatsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStatsClient creates a new stats API client
func NewStatsClient(baseURL, apiKey string, timeout time.Duration) *StatsClient {
	return &StatsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *StatsClient) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall("stats", path, "network_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("stats API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordAPICall("stats", path, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// gameLogResponse is the stats API shape for a player game log query
type gameLogResponse struct {
	Player string    `json:"player"`
	Stat   string    `json:"stat"`
	Games  []float64 `json:"games"`
}

// RecentGames fetches a player's per-game values for one stat, ordered
// oldest to most recent. An empty slice means no usable history.
func (c *StatsClient) RecentGames(ctx context.Context, player, statType string, numGames int) ([]float64, error) {
	path := fmt.Sprintf("players/%s/gamelog", url.PathEscape(player))
	body, err := c.get(ctx, path, map[string]string{
		"stat":  statType,
		"games": strconv.Itoa(numGames),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game log: %w", err)
	}

	var resp gameLogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game log: %w", err)
	}

	log.Debug().
		Str("player", player).
		Str("stat", statType).
		Int("games", len(resp.Games)).
		Msg("Game log fetched")

	return resp.Games, nil
}

// teamDefenseResponse is the stats API shape for team defensive totals
type teamDefenseResponse struct {
	Team             string  `json:"team"`
	PassYardsAllowed float64 `json:"pass_yards_allowed"`
	RushYardsAllowed float64 `json:"rush_yards_allowed"`
	PointsAllowed    float64 `json:"points_allowed"`
}

// TeamDefenses fetches season defensive totals for every team
func (c *StatsClient) TeamDefenses(ctx context.Context) ([]analysis.TeamDefense, error) {
	body, err := c.get(ctx, "teams/defense", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team defenses: %w", err)
	}

	var resp []teamDefenseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team defenses: %w", err)
	}

	defenses := make([]analysis.TeamDefense, 0, len(resp))
	for _, t := range resp {
		defenses = append(defenses, analysis.TeamDefense{
			Team:             t.Team,
			PassYardsAllowed: t.PassYardsAllowed,
			RushYardsAllowed: t.RushYardsAllowed,
			PointsAllowed:    t.PointsAllowed,
		})
	}

	return defenses, nil
}

// venueResponse is the stats API shape for a venue lookup
type venueResponse struct {
	Team          string  `json:"team"`
	Stadium       string  `json:"stadium"`
	Dome          bool    `json:"dome"`
	WindMPH       float64 `json:"wind_mph"`
	Precipitation bool    `json:"precipitation"`
}

// GameConditions fetches venue and forecast conditions for the home team's
// stadium. Missing data degrades to neutral outdoor conditions.
func (c *StatsClient) GameConditions(ctx context.Context, homeTeam string) (analysis.Conditions, error) {
	path := fmt.Sprintf("venues/%s/conditions", url.PathEscape(homeTeam))
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return analysis.Conditions{}, fmt.Errorf("failed to fetch game conditions: %w", err)
	}

	var resp venueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return analysis.Conditions{}, fmt.Errorf("failed to unmarshal game conditions: %w", err)
	}

	return analysis.Conditions{
		Dome:          resp.Dome,
		WindMPH:       resp.WindMPH,
		Precipitation: resp.Precipitation,
	}, nil
}
