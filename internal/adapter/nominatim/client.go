// Package nominatim implements the geocoding port against the OSM Nominatim
// search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/address-resolver/internal/domain"
	"github.com/couchcryptid/address-resolver/internal/observability"
)

// userAgent identifies the tool per the Nominatim usage policy.
const userAgent = "address-resolver/1.0 (+https://github.com/couchcryptid/address-resolver)"

// Client implements domain.Geocoder. One query maps to exactly one request
// with a fixed parameter set; the client never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim search client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Search resolves a free-form query to at most one place. The result limit
// is pinned to 1 and responses are biased to Russian via accept-language.
func (c *Client) Search(ctx context.Context, query string) (domain.Place, error) {
	params := url.Values{
		"q":               {query},
		"format":          {"json"},
		"limit":           {"1"},
		"accept-language": {"ru"},
		"addressdetails":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return domain.Place{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("transport_error").Inc()
		return domain.Place{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.GeocodeDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues("http_error").Inc()
		return domain.Place{}, &domain.StatusError{Status: resp.StatusCode}
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("unparsable").Inc()
		return domain.Place{}, fmt.Errorf("%w: %v", domain.ErrUnparsable, err)
	}

	if len(results) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return domain.Place{}, domain.ErrNoResults
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()

	// Only the first result is used; the limit=1 parameter makes more than
	// one unlikely but not impossible with some provider deployments.
	first := results[0]
	return domain.Place{
		Lat:         first.Lat,
		Lon:         first.Lon,
		DisplayName: first.DisplayName,
		Address:     first.Address,
	}, nil
}

// Nominatim API response types. Coordinates arrive as strings.

type searchResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
}
