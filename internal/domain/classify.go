package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// cyrillicRe matches any character of the Russian alphabet, including Ё/ё
// which sits outside the contiguous А-я block.
var cyrillicRe = regexp.MustCompile(`[А-Яа-яЁё]`)

const (
	minAddressTokens = 2
	minAddressRunes  = 5
)

// Sanitize strips surrounding whitespace and drops bytes that are not valid
// UTF-8. Idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	return strings.TrimSpace(strings.ToValidUTF8(raw, ""))
}

// Classify sanitizes a raw query and decides whether it is a coordinate pair
// or address text. It is a pure function of the input.
//
// Returns ErrEmptyInput when nothing survives sanitization, ErrWrongScript
// when text contains no Cyrillic characters, and ErrTooShort when text has
// fewer than two tokens or five runes.
func Classify(raw string) (Input, error) {
	text := Sanitize(raw)
	if text == "" {
		return Input{}, ErrEmptyInput
	}

	if coords, ok := parseCoordinates(text); ok {
		return Input{Kind: InputCoordinates, Coords: coords}, nil
	}

	if !cyrillicRe.MatchString(text) {
		return Input{}, ErrWrongScript
	}

	tokens := splitTokens(text)
	if len(tokens) < minAddressTokens || utf8.RuneCountInString(text) < minAddressRunes {
		return Input{}, ErrTooShort
	}

	return Input{Kind: InputAddress, Text: text}, nil
}

// parseCoordinates accepts exactly two numeric tokens, comma- or
// whitespace-separated, both within WGS-84 ranges. Anything else (including
// an out-of-range numeric pair) is not a coordinate query and falls through
// to text classification.
func parseCoordinates(text string) (Coordinates, bool) {
	parts := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(parts) != 2 {
		return Coordinates{}, false
	}

	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lon, errLon := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLon != nil {
		return Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, false
	}

	return Coordinates{Lat: lat, Lon: lon}, true
}

// splitTokens splits on any run of commas and whitespace.
func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
