package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pybites-search/internal/config"
	"github.com/rshade/pybites-search/internal/engine/cache"
)

// Cache status values shown by --cache-info.
const (
	cacheStatusFresh    = "fresh"
	cacheStatusExpired  = "expired"
	cacheStatusMissing  = "missing"
	cacheStatusCorrupt  = "unreadable"
	cacheStatusDisabled = "disabled"
)

// writeCacheInfo prints where the snapshot lives and whether a search would use it.
func writeCacheInfo(w io.Writer, cfg *config.Config, store cache.Store) error {
	printer := message.NewPrinter(language.English)
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	var (
		status string
		snap   *cache.Snapshot
		err    error
	)
	inspector, ok := store.(cache.Inspector)
	switch {
	case !cfg.CacheEnabled || !ok:
		status = cacheStatusDisabled
	default:
		snap, err = inspector.Inspect()
		switch {
		case err == nil && snap.IsFresh(time.Now(), cfg.TTLSeconds):
			status = cacheStatusFresh
		case err == nil:
			status = cacheStatusExpired
		case errors.Is(err, cache.ErrCacheNotFound):
			status = cacheStatusMissing
		default:
			status = cacheStatusCorrupt
		}
	}

	lines := []string{
		printer.Sprintf("Cache file: %s", cfg.CachePath),
		printer.Sprintf("Status: %s", status),
		printer.Sprintf("TTL: %s", cache.FormatDuration(ttl)),
	}
	if snap != nil {
		lines = append(lines,
			printer.Sprintf("Items: %d", len(snap.Items)),
			printer.Sprintf("Age: %s", cache.FormatDuration(snap.Age(time.Now()))),
		)
	}
	if status == cacheStatusCorrupt {
		lines = append(lines, printer.Sprintf("Error: %v", err))
	}

	for _, line := range lines {
		if _, writeErr := fmt.Fprintln(w, line); writeErr != nil {
			return writeErr
		}
	}
	return nil
}
