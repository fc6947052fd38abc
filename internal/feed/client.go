// Package feed talks to the external athlete-data oracle and merges its
// records into the local athlete pool. The oracle's content is untrusted: it
// may be malformed, empty, or claim sale state of its own, so every incoming
// record is normalized before it reaches the store and sold athletes are never
// overwritten by a sync.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrEmptyFeed is returned when the oracle responds with no athlete records.
var ErrEmptyFeed = errors.New("feed returned no athletes")

// Record is one athlete record as the oracle reports it. IsSold and sale
// fields are intentionally absent: the feed is not trusted for sale state.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Role      string `json:"skill"`
	BasePrice int    `json:"base_price"`
	Rating    int    `json:"rating"`
	PriorTeam string `json:"original_team"`
	Stats     *struct {
		Matches    int     `json:"matches"`
		Runs       int     `json:"runs"`
		Wickets    int     `json:"wickets"`
		StrikeRate float64 `json:"strike_rate"`
		Economy    float64 `json:"economy"`
	} `json:"stats"`
}

// ClientConfig tunes retry behaviour for the feed client.
type ClientConfig struct {
	MaxRetries     int
	RetryDelayBase time.Duration
}

// Client fetches athlete records from the feed oracle.
type Client struct {
	apiBaseURL string
	season     string
	httpClient *http.Client
	cfg        ClientConfig
}

// NewClient creates a feed client for the given base URL and season context.
func NewClient(apiBaseURL, season string, timeout time.Duration, cfg ClientConfig) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelayBase <= 0 {
		cfg.RetryDelayBase = time.Second
	}
	return &Client{
		apiBaseURL: apiBaseURL,
		season:     season,
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

// FetchAthletes retrieves the current season's athlete records from the
// oracle. An empty result is an error: the caller must make no state change
// on any failure.
func (c *Client) FetchAthletes(ctx context.Context) ([]Record, error) {
	url := fmt.Sprintf("%s/athletes?season=%s", c.apiBaseURL, c.season)

	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch athletes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode athletes: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFeed
	}
	return records, nil
}

// doRequest performs an HTTP GET with bounded linear-backoff retry on network
// errors and 5xx responses.
func (c *Client) doRequest(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error

	for i := 0; i < c.cfg.MaxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(c.cfg.RetryDelayBase * time.Duration(i+1))
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			time.Sleep(c.cfg.RetryDelayBase * time.Duration(i+1))
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
