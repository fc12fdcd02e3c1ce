package cli

import (
	"bytes"
	"context"
	"io"

	"github.com/rshade/pybites-search/internal/engine"
)

// searchRequest carries one invocation's search inputs.
type searchRequest struct {
	terms       []string
	contentType string
	titleOnly   bool
	format      string
	color       bool
	endpoint    string
	ttlSeconds  int
}

// runSearch validates the request, fetches the catalog and writes the matches.
// The predicate is built before fetching so invalid input never reaches the
// network, and output is buffered so a failure never leaves partial results.
func runSearch(ctx context.Context, out io.Writer, req searchRequest, fetcher *engine.Fetcher) error {
	predicate, err := engine.NewPredicate(req.terms, req.contentType, req.titleOnly)
	if err != nil {
		logger.Debug().Ctx(ctx).Err(err).Msg("invalid search input")
		return err
	}

	items, err := fetcher.Fetch(ctx, req.endpoint, req.ttlSeconds)
	if err != nil {
		logger.Debug().Ctx(ctx).Err(err).Str("endpoint", req.endpoint).Msg("fetching catalog failed")
		return err
	}

	matches := predicate.Filter(items)
	logger.Debug().Ctx(ctx).
		Str("pattern", predicate.Pattern().String()).
		Str("content_type", predicate.ContentType()).
		Bool("title_only", predicate.TitleOnly()).
		Int("items", len(items)).
		Int("matches", len(matches)).
		Msg("search complete")

	var buf bytes.Buffer
	r := newRenderer(req.color)
	if err := r.render(&buf, req.format, matches, predicate.ShowType()); err != nil {
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}
