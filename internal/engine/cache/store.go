package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rshade/pybites-search/internal/catalog"
)

// FileName is the snapshot file created in the user's home directory.
const FileName = ".pybites-search-cache.json"

// ErrCacheMiss is matched (via errors.Is) by every reason a Load cannot serve items.
var ErrCacheMiss = errors.New("cache miss")

// Reasons for a miss. Each wraps ErrCacheMiss.
var (
	ErrCacheNotFound = fmt.Errorf("%w: no snapshot", ErrCacheMiss)
	ErrCacheExpired  = fmt.Errorf("%w: snapshot expired", ErrCacheMiss)
	ErrCacheCorrupt  = fmt.Errorf("%w: snapshot unreadable", ErrCacheMiss)
	ErrCacheDisabled = fmt.Errorf("%w: cache is disabled", ErrCacheMiss)
)

// Store loads and saves the catalog snapshot.
type Store interface {
	// Load returns the cached items when the snapshot is no older than ttlSeconds.
	Load(ttlSeconds int) ([]catalog.Item, error)

	// Save replaces the snapshot with items stamped at the current time.
	Save(items []catalog.Item) error
}

// Inspector exposes the raw snapshot without a freshness check.
type Inspector interface {
	Inspect() (*Snapshot, error)
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for stamping and staleness checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DefaultPath returns the snapshot location inside homeDir.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, FileName)
}

// FileStore keeps the snapshot in a single JSON file.
// Every Load re-reads the file; nothing is held in memory.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store backed by the file at path.
// The parent directory must already exist.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("cache path cannot be empty")
	}
	o := buildOptions(opts)
	return &FileStore{path: path, now: o.now}, nil
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Inspect reads and decodes the snapshot regardless of its age.
func (s *FileStore) Inspect() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}

	var snap Snapshot
	if unmarshalErr := json.Unmarshal(data, &snap); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, unmarshalErr)
	}
	return &snap, nil
}

// Load returns the cached items if the snapshot exists, decodes, and is fresh.
func (s *FileStore) Load(ttlSeconds int) ([]catalog.Item, error) {
	snap, err := s.Inspect()
	if err != nil {
		return nil, err
	}
	if !snap.IsFresh(s.now(), ttlSeconds) {
		return nil, ErrCacheExpired
	}
	return snap.Items, nil
}

// Save writes the snapshot to a temp file in the same directory and renames it
// over the target, fully replacing any previous content.
func (s *FileStore) Save(items []catalog.Item) error {
	data, err := json.Marshal(NewSnapshot(items, s.now()))
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tempPath := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to close cache file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tempPath, 0o600); chmodErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to set cache file mode: %w", chmodErr)
	}

	if renameErr := os.Rename(tempPath, s.path); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}
	return nil
}

// MemoryStore is an in-process Store with the same staleness rule as FileStore.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{now: o.now}
}

// Load returns a copy of the stored items when fresh.
func (m *MemoryStore) Load(ttlSeconds int) ([]catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, ErrCacheNotFound
	}
	if !m.snap.IsFresh(m.now(), ttlSeconds) {
		return nil, ErrCacheExpired
	}
	return cloneItems(m.snap.Items), nil
}

// Save replaces the stored snapshot.
func (m *MemoryStore) Save(items []catalog.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = NewSnapshot(cloneItems(items), m.now())
	return nil
}

// Inspect returns a copy of the stored snapshot regardless of its age.
func (m *MemoryStore) Inspect() (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, ErrCacheNotFound
	}
	return &Snapshot{Timestamp: m.snap.Timestamp, Items: cloneItems(m.snap.Items)}, nil
}

// DisabledStore never serves items and refuses to save.
type DisabledStore struct{}

// Load always misses.
func (DisabledStore) Load(int) ([]catalog.Item, error) { return nil, ErrCacheDisabled }

// Save always fails.
func (DisabledStore) Save([]catalog.Item) error { return ErrCacheDisabled }

// Inspect always fails.
func (DisabledStore) Inspect() (*Snapshot, error) { return nil, ErrCacheDisabled }

func cloneItems(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, len(items))
	copy(out, items)
	return out
}
