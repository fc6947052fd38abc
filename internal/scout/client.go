// Package scout fetches free-text scouting commentary for a live lot from an
// external text-generation oracle. The report is color for the operator, not
// auction state: any failure degrades to a fixed fallback line and never
// surfaces as an error to the caller.
package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/madrasbay/auctionhall/internal/logger"
	"github.com/madrasbay/auctionhall/internal/models"
)

// FallbackReport is returned whenever the oracle is unreachable or responds
// with garbage.
const FallbackReport = "The scouting engine is offline. Use your instinct."

// Client talks to the scouting oracle.
type Client struct {
	apiBaseURL string
	model      string
	httpClient *http.Client
}

// NewClient creates a scouting client for the given endpoint and model name.
func NewClient(apiBaseURL, model string, timeout time.Duration) *Client {
	return &Client{
		apiBaseURL: apiBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Report returns two sentences of scouting commentary on the athlete given the
// current purse landscape. It never returns an error: failures are logged and
// replaced with FallbackReport.
func (c *Client) Report(ctx context.Context, athlete *models.Athlete, franchises []models.Franchise) string {
	body, err := json.Marshal(generateRequest{
		Model:       c.model,
		Prompt:      buildPrompt(athlete, franchises),
		Temperature: 0.7,
		TopP:        0.9,
	})
	if err != nil {
		logger.Warn("scout: failed to marshal request: %v", err)
		return FallbackReport
	}

	url := fmt.Sprintf("%s/generate", c.apiBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Warn("scout: failed to build request: %v", err)
		return FallbackReport
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("scout: request failed: %v", err)
		return FallbackReport
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("scout: oracle returned status %d", resp.StatusCode)
		return FallbackReport
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warn("scout: failed to decode response: %v", err)
		return FallbackReport
	}
	if strings.TrimSpace(out.Text) == "" {
		return FallbackReport
	}
	return out.Text
}

// buildPrompt assembles the commentary prompt from the athlete and the
// franchise purse context.
func buildPrompt(athlete *models.Athlete, franchises []models.Franchise) string {
	var purse []string
	for i := range franchises {
		f := &franchises[i]
		purse = append(purse, fmt.Sprintf("%s (budget %d, squad %d)", f.Name, f.Budget, len(f.Roster)))
	}

	stats := "limited data"
	if athlete.Stats != nil {
		if raw, err := json.Marshal(athlete.Stats); err == nil {
			stats = string(raw)
		}
	}

	return fmt.Sprintf(
		"Write a high-impact two-sentence scouting report for %s (%s), rated %d/100. "+
			"Recent stats: %s. Cover the athlete's tactical value, then name which of "+
			"these franchises should bid: %s.",
		athlete.Name, athlete.Role, athlete.Rating, stats, strings.Join(purse, ", "))
}
