package domain

import "context"

// Normalizer turns loosely-formed address text into a canonical,
// component-ordered string. Normalization is best-effort: ok is false when
// no normalized result is available (capability unconfigured, provider
// failure, or an empty cleaning result), and the caller falls back to the
// original text. A Normalizer never fails the query.
type Normalizer interface {
	Normalize(ctx context.Context, text string) (normalized string, ok bool)
}

// PassthroughNormalizer is the variant selected when the normalization
// capability is not configured. It yields no result, so callers geocode the
// original text.
type PassthroughNormalizer struct{}

func (PassthroughNormalizer) Normalize(context.Context, string) (string, bool) {
	return "", false
}
