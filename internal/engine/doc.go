// Package engine decides where the catalog comes from and which items match a search.
//
// A Fetcher serves the catalog from the snapshot cache while it is fresh and
// otherwise fetches it once from the network and refreshes the cache. A
// Predicate, compiled from the search terms, content-type filter and title-only
// flag, selects matching items without reordering them.
package engine
