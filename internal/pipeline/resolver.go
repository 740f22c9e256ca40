// Package pipeline orchestrates one address resolution from raw query to
// canonical result.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/address-resolver/internal/domain"
	"github.com/couchcryptid/address-resolver/internal/observability"
)

// Result is the caller-facing success record.
type Result struct {
	Query       string  `json:"query"`
	Lat         float64 `json:"latitude"`
	Lon         float64 `json:"longitude"`
	FullAddress string  `json:"full_address"`

	// FromCache reports whether the result was served without a provider
	// call. Not part of the wire shape.
	FromCache bool `json:"-"`
}

// Resolver sequences classification, normalization, cache lookup, geocoding,
// extraction, and cache population for a single query. It holds no per-query
// state; only the store outlives a call.
type Resolver struct {
	normalizer domain.Normalizer
	geocoder   domain.Geocoder
	store      domain.AddressStore
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewResolver creates a Resolver. Pass domain.PassthroughNormalizer or
// domain.NoopStore for unconfigured capabilities; none of the collaborators
// may be nil.
func NewResolver(n domain.Normalizer, g domain.Geocoder, s domain.AddressStore, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		normalizer: n,
		geocoder:   g,
		store:      s,
		logger:     logger,
		metrics:    metrics,
	}
}

// Resolve runs one query through the pipeline. Every returned error belongs
// to the domain taxonomy and maps to a message via Describe; persistence
// failures never surface.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Result, error) {
	input, err := domain.Classify(raw)
	if err != nil {
		r.metrics.Resolutions.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	query := input.Query()
	if input.Kind == domain.InputAddress {
		if normalized, ok := r.normalizer.Normalize(ctx, input.Text); ok {
			r.logger.Debug("query normalized", "original", input.Text, "normalized", normalized)
			query = normalized
		}
	}

	cached, err := r.store.Lookup(ctx, query)
	if err != nil {
		// A broken cache degrades to a miss; the query still resolves.
		r.logger.Warn("cache lookup failed", "key", query, "error", err)
	}
	if cached != nil {
		r.metrics.CacheLookups.WithLabelValues("hit").Inc()
		r.metrics.Resolutions.WithLabelValues("cached").Inc()
		return Result{
			Query:       query,
			Lat:         cached.Lat,
			Lon:         cached.Lon,
			FullAddress: cached.FullAddress,
			FromCache:   true,
		}, nil
	}
	r.metrics.CacheLookups.WithLabelValues("miss").Inc()

	if err := ctx.Err(); err != nil {
		r.metrics.Resolutions.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	place, err := r.geocoder.Search(ctx, query)
	if err != nil {
		r.metrics.Resolutions.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	resolved, err := domain.ExtractAddress(place)
	if err != nil {
		r.metrics.Resolutions.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	// The write keys on the resolved full address, not the query string that
	// was looked up above. Distinct phrasings of one place therefore stay
	// distinct cache entries; unifying the keys would change observable
	// caching behavior.
	rec := domain.CachedAddress{
		Key:         resolved.FullAddress,
		FullAddress: resolved.FullAddress,
		Lat:         resolved.Lat,
		Lon:         resolved.Lon,
	}
	if err := r.store.Insert(ctx, rec); err != nil {
		r.logger.Warn("cache write failed", "key", rec.Key, "error", err)
	}

	r.metrics.Resolutions.WithLabelValues("success").Inc()
	return Result{
		Query:       query,
		Lat:         resolved.Lat,
		Lon:         resolved.Lon,
		FullAddress: resolved.FullAddress,
	}, nil
}
