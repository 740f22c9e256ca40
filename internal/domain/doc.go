// Package domain models the address resolution pipeline: query
// classification, provider payload extraction, and the canonical address
// record that gets cached.
//
// # Query Classification
//
// A raw query is either a coordinate pair or free-form Russian address text:
//
//	"56.8225650, 60.6177568"  →  coordinates (comma or whitespace separated)
//	"Екатеринбург, Белинского 86"  →  address text
//
// Two numeric tokens are treated as coordinates only when both values fall
// inside the WGS-84 ranges (lat ∈ [-90,90], lon ∈ [-180,180]); an
// out-of-range pair like "100 50" falls through to text classification.
// Address text must contain at least one Cyrillic character, split into two
// or more tokens, and be at least five runes long.
//
// # Provider Address Components
//
// The geocoding provider (OSM Nominatim) returns address components under
// inconsistent key names depending on the place type. Canonical fields are
// resolved by trying aliases in a fixed priority order:
//
//	region:  state, region
//	city:    city, town, village, municipality
//	street:  road, pedestrian, footway
//	house:   house_number, building
//
// Postcode and country are direct fields. The alias order is a contract:
// changing it changes which component wins for places that carry several.
//
// # Country Scoping
//
// Results are accepted only inside Russia. The country component (or, when
// absent, the free-text display label) must contain the token "россия",
// compared case-insensitively. Anything else is rejected as out of region.
//
// # Canonical Address
//
// The full address is the comma-joined concatenation of the present parts
// [region, city, "house street", postcode]. Comma is chosen because the
// parts themselves are space-joined, so the result re-splits unambiguously.
//
// # Cache Keys
//
// Lookups key on the query representation (normalized text, or the literal
// "lat lon" string for coordinate queries). Writes key on the resolved full
// address. The two shapes are deliberately not unified; see the resolver.
package domain
