package domain

import "time"

// InputKind discriminates the two classified query shapes.
type InputKind int

const (
	// InputCoordinates is a "lat lon" pair within WGS-84 ranges.
	InputCoordinates InputKind = iota
	// InputAddress is free-form Cyrillic address text.
	InputAddress
)

// Coordinates is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Input is the result of classifying a raw query. Exactly one of Coords or
// Text is meaningful, selected by Kind.
type Input struct {
	Kind   InputKind
	Coords Coordinates
	Text   string
}

// Query returns the string sent onward through the pipeline: the literal
// coordinate representation for coordinate queries, the sanitized text
// otherwise. This string seeds both the geocoding query and the cache lookup
// key.
func (in Input) Query() string {
	if in.Kind == InputCoordinates {
		return formatFloat(in.Coords.Lat) + " " + formatFloat(in.Coords.Lon)
	}
	return in.Text
}

// Place is one raw geocoding result as returned by the provider. Lat and Lon
// stay strings because the provider serializes them that way; Address maps
// provider-shaped component names to values and is read-only.
type Place struct {
	Lat         string
	Lon         string
	DisplayName string
	Address     map[string]string
}

// ResolvedAddress is the canonical output of a successful resolution.
type ResolvedAddress struct {
	FullAddress string
	Lat         float64
	Lon         float64
}

// CachedAddress is the persisted form of a resolution. Records are
// create-once, read-many: no update, no delete, no eviction.
type CachedAddress struct {
	Key         string
	FullAddress string
	Lat         float64
	Lon         float64
	CachedAt    time.Time
}
