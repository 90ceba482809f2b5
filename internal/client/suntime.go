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
	"golang.org/x/time/rate"

	"github.com/briduffy3/si201-final-sports-analysts/internal/metrics"
)

// SunClient is the client for the sunrise/sunset API. Calls are paced with
// a token-bucket limiter so the fixed inter-call delay is respected even
// when the caller loops tightly over keys.
type SunClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSunClient creates a sun-time API client that allows at most one call
// per delay interval.
func NewSunClient(baseURL string, delay time.Duration, timeout time.Duration) *SunClient {
	return &SunClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// SunTimes holds sunrise and sunset as ISO timestamps with timezone offset.
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type sunResponse struct {
	Results SunTimes `json:"results"`
	Status  string   `json:"status"`
}

// FetchSunTimes queries sunrise and sunset for a location, and for a
// specific calendar date when date is non-empty (YYYY-MM-DD).
func (c *SunClient) FetchSunTimes(ctx context.Context, lat, lon float64, date string) (*SunTimes, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("formatted", "0")
	if date != "" {
		params.Set("date", date)
	}

	u := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Debug().Float64("lat", lat).Float64("lon", lon).Str("date", date).Msg("Making sun-time API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues("suntime", "error").Inc()
		return nil, fmt.Errorf("sun-time API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues("suntime", "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.APICallsTotal.WithLabelValues("suntime", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sun-time API returned status %d", resp.StatusCode)
	}

	var parsed sunResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sun-time response: %w", err)
	}

	if parsed.Status != "OK" {
		return nil, fmt.Errorf("sun-time API signalled failure: %s", parsed.Status)
	}

	return &parsed.Results, nil
}
