package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"disasterhub/core/metrics"
)

// Config holds configuration for the geocoding provider.
type Config struct {
	// BaseURL is the Nominatim instance to query.
	BaseURL string `mapstructure:"base_url" default:"https://nominatim.openstreetmap.org"`
	// UserAgent identifies this service to the provider, as its usage
	// policy requires.
	UserAgent string `mapstructure:"user_agent" default:"DisasterHub/1.0"`
}

// Result is a geocoded place. Lat and Lon are nil when the provider found
// no match; "no match" is a valid outcome, not an error.
type Result struct {
	Location string   `json:"location"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

// Client queries the geocoding provider for the best match of a free-text
// place name.
type Client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics.Metrics
}

// NewClient builds a geocoder client from configuration.
func NewClient(cfg Config, m *metrics.Metrics) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 20 * time.Second},
		metrics: m,
	}
}

// response mirrors the provider's search result rows; coordinates arrive as
// strings.
type response []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name to coordinates. An empty provider result
// yields nil coordinates; transport and decode failures are errors.
func (c *Client) Geocode(ctx context.Context, location string) (Result, error) {
	c.metrics.ProviderCall("nominatim")

	searchURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		c.cfg.BaseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ProviderError("nominatim")
		return Result{}, fmt.Errorf("geocode %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderError("nominatim")
		return Result{}, fmt.Errorf("geocode %q: provider returned %s", location, resp.Status)
	}

	var matches response
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		c.metrics.ProviderError("nominatim")
		return Result{}, fmt.Errorf("geocode %q: decode response: %w", location, err)
	}

	if len(matches) == 0 {
		return Result{Location: location}, nil
	}

	lat, latErr := strconv.ParseFloat(matches[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(matches[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		c.metrics.ProviderError("nominatim")
		return Result{}, fmt.Errorf("geocode %q: malformed coordinates in response", location)
	}

	return Result{Location: location, Lat: &lat, Lon: &lon}, nil
}
