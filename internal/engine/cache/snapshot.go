package cache

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/rshade/pybites-search/internal/catalog"
)

// Snapshot is the persisted unit: the items of one fetch and when they were saved.
type Snapshot struct {
	// Timestamp is the save time in Unix seconds.
	Timestamp uint64 `json:"timestamp"`

	// Items are kept in API response order.
	Items []catalog.Item `json:"items"`
}

// NewSnapshot captures items at the given time.
func NewSnapshot(items []catalog.Item, now time.Time) *Snapshot {
	if items == nil {
		items = []catalog.Item{}
	}
	ts := now.Unix()
	if ts < 0 {
		ts = 0
	}
	return &Snapshot{Timestamp: uint64(ts), Items: items}
}

// Age returns how long ago the snapshot was saved. A timestamp in the future yields a negative age.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return time.Duration(now.Unix()-int64(s.Timestamp)) * time.Second //nolint:gosec // bounded by UnmarshalJSON and NewSnapshot
}

// IsFresh reports whether now - timestamp <= ttlSeconds.
func (s *Snapshot) IsFresh(now time.Time, ttlSeconds int) bool {
	age := now.Unix() - int64(s.Timestamp) //nolint:gosec // bounded by UnmarshalJSON and NewSnapshot
	return age <= int64(ttlSeconds)
}

// UnmarshalJSON requires both the timestamp and items keys, so snapshots written
// by an incompatible format are rejected instead of decoding to zero values.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if s == nil {
		return errors.New("cannot unmarshal into nil Snapshot")
	}
	var aux struct {
		Timestamp *uint64         `json:"timestamp"`
		Items     *[]catalog.Item `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Timestamp == nil {
		return errors.New("snapshot missing timestamp")
	}
	if *aux.Timestamp > math.MaxInt64 {
		return errors.New("snapshot timestamp out of range")
	}
	if aux.Items == nil || *aux.Items == nil {
		return errors.New("snapshot missing items")
	}
	s.Timestamp = *aux.Timestamp
	s.Items = *aux.Items
	return nil
}
