package domain

import (
	"strconv"
	"strings"
)

// Alias priority per canonical field. The order is a tie-break contract:
// when a provider result carries several aliases, the first present and
// non-empty one wins.
var (
	regionAliases = []string{"state", "region"}
	cityAliases   = []string{"city", "town", "village", "municipality"}
	streetAliases = []string{"road", "pedestrian", "footway"}
	houseAliases  = []string{"house_number", "building"}
)

// countryToken is the lowercase substring a result's country (or display
// label) must contain to pass the scoping filter.
const countryToken = "россия"

// fieldDelimiter joins the top-level address parts. Distinct from the space
// used inside parts, so the full address re-splits unambiguously.
const fieldDelimiter = ", "

// ExtractAddress maps a raw provider result into a canonical address.
//
// It fails with ErrMissingCoordinates when either coordinate is absent or
// not numeric, and with ErrOutOfRegion when the result is not scoped to
// Russia. On success FullAddress is non-empty only if at least one address
// component was present.
func ExtractAddress(place Place) (ResolvedAddress, error) {
	lat, errLat := parseCoordinate(place.Lat)
	lon, errLon := parseCoordinate(place.Lon)
	if errLat != nil || errLon != nil {
		return ResolvedAddress{}, ErrMissingCoordinates
	}

	if !inRegion(place) {
		return ResolvedAddress{}, ErrOutOfRegion
	}

	region := firstNonEmpty(place.Address, regionAliases)
	city := firstNonEmpty(place.Address, cityAliases)
	postcode := place.Address["postcode"]

	parts := make([]string, 0, 4)
	for _, p := range []string{region, city, streetAndHouse(place.Address), postcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return ResolvedAddress{
		FullAddress: strings.Join(parts, fieldDelimiter),
		Lat:         lat,
		Lon:         lon,
	}, nil
}

// streetAndHouse builds the composite street component: "house street" when
// both are present, either one alone otherwise, empty when neither exists.
func streetAndHouse(address map[string]string) string {
	street := firstNonEmpty(address, streetAliases)
	house := firstNonEmpty(address, houseAliases)

	switch {
	case street != "" && house != "":
		return house + " " + street
	case street != "":
		return street
	default:
		return house
	}
}

// inRegion applies the country scoping filter: the country component must
// contain the target token; when no country component exists the free-text
// display label is consulted instead.
func inRegion(place Place) bool {
	if country := place.Address["country"]; country != "" {
		return strings.Contains(strings.ToLower(country), countryToken)
	}
	return strings.Contains(strings.ToLower(place.DisplayName), countryToken)
}

func parseCoordinate(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func firstNonEmpty(mapping map[string]string, keys []string) string {
	for _, key := range keys {
		if v := mapping[key]; v != "" {
			return v
		}
	}
	return ""
}
