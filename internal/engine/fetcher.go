package engine

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/pybites-search/internal/catalog"
	"github.com/rshade/pybites-search/internal/engine/cache"
	"github.com/rshade/pybites-search/internal/logging"
)

// ItemSource retrieves the catalog from the network.
type ItemSource interface {
	GetItems(ctx context.Context, endpoint string) ([]catalog.Item, error)
}

// Fetcher serves the catalog from the cache when fresh and otherwise fetches it
// once from the source and refreshes the cache.
type Fetcher struct {
	store  cache.Store
	source ItemSource
	group  singleflight.Group
}

// NewFetcher wires a cache store and an item source.
func NewFetcher(store cache.Store, source ItemSource) *Fetcher {
	if store == nil {
		store = cache.DisabledStore{}
	}
	return &Fetcher{store: store, source: source}
}

// Fetch returns the catalog items.
//
// A fresh snapshot is returned without touching the network. On any miss the
// source is called exactly once, and concurrent callers for the same endpoint
// share that call. A failure there is returned as *FetchError and not retried.
// A caller whose ctx ends first gets its own *FetchError while the shared call
// continues for the others. A failure to save the fetched items is logged and ignored.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string, ttlSeconds int) ([]catalog.Item, error) {
	log := logging.FromContext(ctx)

	items, err := f.store.Load(ttlSeconds)
	if err == nil {
		log.Debug().Ctx(ctx).
			Str("component", "fetcher").
			Int("items", len(items)).
			Int("ttl_seconds", ttlSeconds).
			Msg("serving catalog from cache")
		return items, nil
	}

	log.Debug().Ctx(ctx).
		Str("component", "fetcher").
		Err(err).
		Msg("cache miss, fetching catalog")

	// The shared call outlives any single caller; the source applies its own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(endpoint, func() (any, error) {
		fetched, fetchErr := f.source.GetItems(fetchCtx, endpoint)
		if fetchErr != nil {
			return nil, newFetchError(endpoint, fetchErr)
		}

		if saveErr := f.store.Save(fetched); saveErr != nil {
			log.Debug().Ctx(ctx).
				Str("component", "fetcher").
				Err(saveErr).
				Msg("could not persist catalog snapshot")
		}
		return fetched, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, newFetchError(endpoint, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	items, _ = res.Val.([]catalog.Item)
	log.Debug().Ctx(ctx).
		Str("component", "fetcher").
		Int("items", len(items)).
		Bool("shared", res.Shared).
		Msg("catalog fetched")
	return items, nil
}
