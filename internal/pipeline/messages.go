package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/address-resolver/internal/domain"
)

// Describe maps a terminal resolution error to the single human-readable
// message shown to the caller. Nothing structured crosses this boundary.
func Describe(err error) string {
	var statusErr *domain.StatusError

	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "Empty query. Enter an address or a pair of coordinates."
	case errors.Is(err, domain.ErrWrongScript):
		return "Invalid input. Enter a Russian-language address or two coordinates separated by a space or comma."
	case errors.Is(err, domain.ErrTooShort):
		return "Address too short. Try the form 'город, улица дом'."
	case errors.Is(err, domain.ErrNoResults):
		return "Nothing found for this query."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("The geocoding service returned an error: HTTP %d.", statusErr.Status)
	case errors.Is(err, domain.ErrUnparsable):
		return "Could not parse the geocoding service response."
	case errors.Is(err, domain.ErrMissingCoordinates):
		return "The service response contains no coordinates."
	case errors.Is(err, domain.ErrOutOfRegion):
		return "The address is outside Russia."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The query was interrupted."
	default:
		return fmt.Sprintf("Failed to reach the geocoding service: %v.", err)
	}
}
