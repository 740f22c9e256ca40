// Package dadata implements the normalization port against the DaData
// address cleaning API.
package dadata

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/address-resolver/internal/observability"
)

// countryQualifier is appended to every cleaning request to bias the
// provider toward Russian addresses.
const countryQualifier = "Россия"

// Client implements domain.Normalizer. Every failure mode is soft: the
// client logs, counts, and reports "no result" so the caller geocodes the
// original text instead. It never fails the query.
type Client struct {
	token      string
	secret     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a DaData cleaning client. Both credentials must be
// non-empty; construction is gated by config.NormalizationEnabled.
func NewClient(baseURL, token, secret string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Normalize cleans free-form address text into a canonical space-joined
// string of [street, house, city, region, country], taking only the fields
// the provider returned non-empty.
func (c *Client) Normalize(ctx context.Context, text string) (string, bool) {
	cleaned, ok := c.clean(ctx, text+" "+countryQualifier)
	if !ok {
		return "", false
	}

	pieces := make([]string, 0, 5)
	for _, v := range []string{cleaned.Street, cleaned.House, cleaned.City, cleaned.Region, cleaned.Country} {
		if v != "" {
			pieces = append(pieces, v)
		}
	}
	if len(pieces) == 0 {
		c.logger.Warn("cleaning result has no usable address fields", "query", text)
		c.metrics.NormalizeRequests.WithLabelValues("fallback").Inc()
		return "", false
	}

	c.metrics.NormalizeRequests.WithLabelValues("normalized").Inc()
	return strings.Join(pieces, " "), true
}

func (c *Client) clean(ctx context.Context, query string) (cleanedAddress, bool) {
	body, err := json.Marshal([]string{query})
	if err != nil {
		return cleanedAddress{}, c.fail("encode cleaning request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/clean/address", bytes.NewReader(body))
	if err != nil {
		return cleanedAddress{}, c.fail("create cleaning request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("X-Secret", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cleanedAddress{}, c.fail("cleaning request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("cleaning provider returned non-success status", "status", resp.StatusCode)
		c.metrics.NormalizeRequests.WithLabelValues("fallback").Inc()
		return cleanedAddress{}, false
	}

	var results []cleanedAddress
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return cleanedAddress{}, c.fail("decode cleaning response", err)
	}
	if len(results) == 0 {
		c.logger.Warn("cleaning provider returned an empty result")
		c.metrics.NormalizeRequests.WithLabelValues("fallback").Inc()
		return cleanedAddress{}, false
	}

	return results[0], true
}

// fail logs a soft normalization failure and reports it as "no result".
func (c *Client) fail(msg string, err error) bool {
	c.logger.Warn("address normalization failed", "stage", msg, "error", err)
	c.metrics.NormalizeRequests.WithLabelValues("fallback").Inc()
	return false
}

// DaData clean API response type. Null fields decode to empty strings.

type cleanedAddress struct {
	Street  string `json:"street"`
	House   string `json:"house"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}
