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

	"github.com/briduffy3/si201-final-sports-analysts/internal/metrics"
	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

// StatsClient is the client for the cursor-paginated stats API.
type StatsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStatsClient creates a stats API client.
func NewStatsClient(baseURL, apiKey string, timeout time.Duration) *StatsClient {
	return &StatsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// StatsPage is one page of stat records plus the continuation token for the
// next page. A nil cursor means the source is exhausted.
type StatsPage struct {
	Data []models.StatInput `json:"data"`
	Meta struct {
		NextCursor *int `json:"next_cursor"`
	} `json:"meta"`
}

// get performs a GET request and returns the raw body on HTTP 200.
// There is no retry: a non-success response is an error the ingestion loop
// turns into an empty page for this invocation.
func (c *StatsClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", u).Msg("Making stats API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues("stats", "error").Inc()
		return nil, fmt.Errorf("stats API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues("stats", "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.APICallsTotal.WithLabelValues("stats", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats API returned status %d", resp.StatusCode)
	}

	return body, nil
}

// FetchStats fetches one page of stat records for the tracked players and
// seasons. Pass the previous page's cursor to continue; nil starts over.
func (c *StatsClient) FetchStats(ctx context.Context, playerIDs, seasons []int, perPage int, cursor *int) (*StatsPage, error) {
	params := url.Values{}
	for _, id := range playerIDs {
		params.Add("player_ids[]", strconv.Itoa(id))
	}
	for _, season := range seasons {
		params.Add("seasons[]", strconv.Itoa(season))
	}
	params.Set("per_page", strconv.Itoa(perPage))
	if cursor != nil {
		params.Set("cursor", strconv.Itoa(*cursor))
	}

	body, err := c.get(ctx, "/stats", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}

	var page StatsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats page: %w", err)
	}

	log.Debug().
		Int("records", len(page.Data)).
		Bool("has_cursor", page.Meta.NextCursor != nil).
		Msg("Stats page fetched")

	return &page, nil
}

// FetchGame resolves a single game id to its full schedule detail.
func (c *StatsClient) FetchGame(ctx context.Context, gameID int) (*models.GameDetail, error) {
	body, err := c.get(ctx, fmt.Sprintf("/games/%d", gameID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game %d: %w", gameID, err)
	}

	var wrapper struct {
		Data models.GameDetail `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game detail: %w", err)
	}

	return &wrapper.Data, nil
}
