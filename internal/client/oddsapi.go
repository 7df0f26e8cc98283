package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/metrics"
)

// Prop markets requested from The Odds API, keyed by position group
var (
	QBMarkets = []string{"player_pass_yds", "player_pass_tds", "player_pass_completions"}
	RBMarkets = []string{"player_rush_yds", "player_rush_attempts", "player_reception_yds", "player_receptions"}
	WRMarkets = []string{"player_reception_yds", "player_receptions", "player_rush_yds"}
	TEMarkets = []string{"player_reception_yds", "player_receptions"}
)

// Event is an upcoming game returned by The Odds API
type Event struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// Outcome is one side of a market from a bookmaker
type Outcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       int     `json:"price"`
	Point       float64 `json:"point,omitempty"`
}

// Market is a betting market offered by a bookmaker
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Bookmaker is one book's markets for an event
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// EventOdds is the full odds payload for one event
type EventOdds struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// OddsClient is The Odds API client
type OddsClient struct {
	baseURL     string
	apiKey      string
	sport       string
	bookmakers  string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewOddsClient creates a new Odds API client
func NewOddsClient(baseURL, apiKey, sport, bookmakers string, timeout time.Duration) *OddsClient {
	// Rate limiter (max 10 concurrent requests)
	rateLimiter := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		rateLimiter <- struct{}{}
	}

	return &OddsClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		sport:       sport,
		bookmakers:  bookmakers,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
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

// get performs a GET request against The Odds API with retry logic and
// rate limiting. The API key travels as a query parameter.
func (c *OddsClient) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
			defer func() { c.rateLimiter <- struct{}{} }()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "nfl-props-analyzer/1.0")

		q := req.URL.Query()
		q.Add("apiKey", c.apiKey)
		for key, value := range params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordAPICall("odds", path, "network_error", time.Since(start).Seconds())
			lastErr = fmt.Errorf("API request failed: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		metrics.RecordAPICall("odds", path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

		switch resp.StatusCode {
		case http.StatusOK:
			log.Debug().
				Str("url", url).
				Str("requests_remaining", resp.Header.Get("x-requests-remaining")).
				Int("size", len(body)).
				Msg("API request successful")
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))
			if attempt < c.maxRetries {
				log.Warn().
					Str("url", url).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			return nil, lastErr

		case http.StatusUnauthorized, http.StatusForbidden:
			// Don't retry auth errors
			return nil, fmt.Errorf("API authentication failed (status %d): %s", resp.StatusCode, string(body))

		default:
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}

// FetchEvents fetches upcoming events for the configured sport
func (c *OddsClient) FetchEvents(ctx context.Context) ([]Event, error) {
	path := fmt.Sprintf("sports/%s/events", c.sport)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	return events, nil
}

// FetchEventOdds fetches player prop odds for one event across the
// configured bookmakers. markets is a comma-separated market key list.
func (c *OddsClient) FetchEventOdds(ctx context.Context, eventID, markets string) (*EventOdds, error) {
	path := fmt.Sprintf("sports/%s/events/%s/odds", c.sport, eventID)

	params := map[string]string{
		"regions":    "us",
		"markets":    markets,
		"oddsFormat": "american",
	}
	if c.bookmakers != "" {
		params["bookmakers"] = c.bookmakers
	}

	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event odds: %w", err)
	}

	var odds EventOdds
	if err := json.Unmarshal(body, &odds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event odds: %w", err)
	}

	return &odds, nil
}

// FetchSpreads fetches the point spread market for one event. Returns the
// spread from the home team's perspective (negative when home is favored
// by the book convention, so callers negate for "positive when favored").
func (c *OddsClient) FetchSpreads(ctx context.Context, eventID string) (*EventOdds, error) {
	path := fmt.Sprintf("sports/%s/events/%s/odds", c.sport, eventID)

	params := map[string]string{
		"regions":    "us",
		"markets":    "spreads",
		"oddsFormat": "american",
	}
	if c.bookmakers != "" {
		params["bookmakers"] = c.bookmakers
	}

	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreads: %w", err)
	}

	var odds EventOdds
	if err := json.Unmarshal(body, &odds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spreads: %w", err)
	}

	return &odds, nil
}
