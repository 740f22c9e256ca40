package domain

import "context"

// Geocoder resolves a query string to at most one raw provider result.
//
// Implementations issue exactly one bounded-timeout request and classify the
// outcome: a transport failure is returned wrapped, a non-success status as
// *StatusError, an undecodable body wraps ErrUnparsable, and an empty result
// collection is ErrNoResults.
type Geocoder interface {
	Search(ctx context.Context, query string) (Place, error)
}
