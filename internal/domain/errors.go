package domain

import (
	"errors"
	"fmt"
)

// Input classification failures. No external call is made once one of these
// is returned.
var (
	ErrEmptyInput  = errors.New("empty query")
	ErrWrongScript = errors.New("query contains no Cyrillic characters")
	ErrTooShort    = errors.New("query too short")
)

// Geocoding and extraction outcomes. All are terminal for the query and are
// never retried.
var (
	// ErrNoResults means the provider answered successfully but knows no such
	// place. Distinct from transport and HTTP failures.
	ErrNoResults = errors.New("no geocoding results")

	// ErrUnparsable means the provider body could not be decoded as JSON.
	ErrUnparsable = errors.New("unparsable geocoding response")

	// ErrMissingCoordinates means the provider result lacks a usable
	// latitude or longitude.
	ErrMissingCoordinates = errors.New("result has no coordinates")

	// ErrOutOfRegion means the resolved place is outside Russia.
	ErrOutOfRegion = errors.New("address outside Russia")
)

// StatusError reports a non-success HTTP status from the geocoding provider.
// The body is not parsed in this case.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocoding provider returned HTTP %d", e.Status)
}
