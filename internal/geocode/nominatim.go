// Package geocode resolves coordinates to place names via the
// Nominatim (OpenStreetMap) reverse API. Results go into the Redis
// cache when one is configured; Nominatim's usage policy caps anonymous
// clients at one request per second, which the client enforces itself.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gps-backfill/internal/observability"
	"gps-backfill/internal/store"
)

const userAgent = "macdive-gps-backfill/1.0 (dive log utility)"

// Place is the subset of the Nominatim address this tool uses.
type Place struct {
	Country  string `json:"country"`
	Location string `json:"location"`
	Water    string `json:"water"`
}

// Empty reports whether geocoding produced nothing usable.
func (p Place) Empty() bool {
	return p.Country == "" && p.Location == "" && p.Water == ""
}

type nominatimAddress struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	Island  string `json:"island"`
	County  string `json:"county"`
	State   string `json:"state"`
	Water   string `json:"water"`
	Bay     string `json:"bay"`
	Sea     string `json:"sea"`
}

type nominatimResponse struct {
	Address nominatimAddress `json:"address"`
}

type Client struct {
	baseURL string
	http    *http.Client
	last    time.Time
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Reverse resolves a coordinate pair to a Place. Cache hits skip the
// network entirely; misses are throttled to 1 req/s.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	key := cacheKey(lat, lon)
	if payload, ok := store.GetPlace(key); ok {
		var p Place
		if err := json.Unmarshal(payload, &p); err == nil {
			observability.GeocodeCacheHits.Inc()
			return p, nil
		}
	}

	c.throttle()

	p, err := c.fetch(ctx, lat, lon)
	if err != nil {
		observability.GeocodeErrors.Inc()
		return Place{}, err
	}

	if payload, err := json.Marshal(p); err == nil {
		store.SavePlaceSafe(key, payload)
	}
	return p, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (Place, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("format", "json")
	q.Set("zoom", "10")
	q.Set("addressdetails", "1")
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Place{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return Place{}, fmt.Errorf("nominatim decode: %w", err)
	}

	a := nr.Address
	return Place{
		Country:  a.Country,
		Location: first(a.City, a.Town, a.Village, a.Island, a.County, a.State),
		Water:    first(a.Water, a.Bay, a.Sea),
	}, nil
}

func (c *Client) throttle() {
	if !c.last.IsZero() {
		if wait := time.Second - time.Since(c.last); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.last = time.Now()
}

// cacheKey rounds to 4 decimals (~11 m) so adjacent dives at the same
// site share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("geo:%.4f:%.4f", lat, lon)
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
