package engine

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rshade/pybites-search/internal/catalog"
)

// FetchKind classifies why a network fetch failed.
type FetchKind string

// Fetch failure kinds.
const (
	FetchTransport FetchKind = "transport"
	FetchTimeout   FetchKind = "timeout"
	FetchStatus    FetchKind = "status"
	FetchDecode    FetchKind = "decode"
)

// FetchError is a fatal failure of the fallback network fetch.
type FetchError struct {
	Kind     FetchKind
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchTimeout {
		return fmt.Sprintf("fetching %s: timed out: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InputError reports invalid user input such as an unknown content type or a missing search term.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// ErrNoSearchTerm is wrapped in an InputError when no usable term was given.
var ErrNoSearchTerm = errors.New("at least one non-empty search term is required")

// newFetchError classifies err from an ItemSource.
func newFetchError(endpoint string, err error) *FetchError {
	kind := FetchTransport

	var statusErr *catalog.StatusError
	var netErr net.Error
	switch {
	case errors.As(err, &statusErr):
		kind = FetchStatus
	case errors.Is(err, catalog.ErrDecode):
		kind = FetchDecode
	case errors.Is(err, context.DeadlineExceeded):
		kind = FetchTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = FetchTimeout
	}

	return &FetchError{Kind: kind, Endpoint: endpoint, Err: err}
}
