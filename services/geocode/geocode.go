// Package geocode resolves postal addresses to coordinates through a
// Nominatim-style search endpoint. Lookups are best effort: callers log
// failures and keep their previous or zero coordinates, and (0,0) always
// means "unknown".
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// Client calls the geocoding endpoint and caches results in Redis. The cache
// is optional; every cache failure degrades to a live lookup.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
}

// NewClient creates a geocoding client. cache may be nil.
func NewClient(baseURL string, cache *redis.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// searchResult is the subset of the Nominatim response we consume.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves an address to latitude/longitude.
func (c *Client) Lookup(ctx context.Context, address string) (float64, float64, error) {
	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return 0, 0, fmt.Errorf("address is empty")
	}
	if c.baseURL == "" {
		return 0, 0, fmt.Errorf("GEOCODER_BASE_URL is not set")
	}

	cacheKey := "geocode:" + strings.ToLower(address)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			if lat, lng, err := parseCached(cached); err == nil {
				return lat, lng, nil
			}
		}
	}

	reqURL := c.baseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("geocoder error: status=%d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no match for address %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in response: %w", err)
	}

	if c.cache != nil {
		// Best effort; a failed write just means another live lookup later.
		c.cache.Set(ctx, cacheKey, formatCached(lat, lng), cacheTTL)
	}

	return lat, lng, nil
}

func formatCached(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

func parseCached(value string) (float64, float64, error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed cache entry")
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
