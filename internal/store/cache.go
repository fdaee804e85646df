package store

import (
	"sort"
	"sync"

	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/pkg/models"
)

// snapshot is one fully-built view of the store. The slice is ordered by
// FileID so that downstream sorting is deterministic regardless of
// directory enumeration order.
type snapshot struct {
	records []models.Session
	byID    map[string]models.Session
}

// Cache holds the session listing between explicit invalidations. At
// most one full store scan happens per invalidation; repeated reads
// return the identical snapshot even if the store changes underneath.
// Staleness is the contract, not a bug.
type Cache struct {
	mu     sync.Mutex
	lister Lister
	snap   *snapshot
}

// NewCache returns an empty cache over the given store.
func NewCache(lister Lister) *Cache {
	return &Cache{lister: lister}
}

// Records returns the cached session listing, scanning the store first
// if no snapshot exists. The returned slice is shared between callers
// and must not be mutated; copy before sorting.
func (c *Cache) Records() ([]models.Session, error) {
	snap, err := c.load()
	if err != nil {
		return nil, err
	}
	return snap.records, nil
}

// Names returns the fileID -> name view of the cached listing.
func (c *Cache) Names() (map[string]string, error) {
	snap, err := c.load()
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snap.records))
	for id, record := range snap.byID {
		names[id] = record.Name
	}
	return names, nil
}

// Lookup returns the cached record for a file identity.
func (c *Cache) Lookup(fileID string) (models.Session, bool, error) {
	snap, err := c.load()
	if err != nil {
		return models.Session{}, false, err
	}
	record, ok := snap.byID[fileID]
	return record, ok, nil
}

// Invalidate discards the snapshot; the next read triggers exactly one
// fresh scan. There is no partial invalidation.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	logger.Debug("Cache: invalidated")
}

// load returns the current snapshot, rebuilding it when absent. The
// mutex serializes rebuilds against invalidation, so a snapshot is
// installed atomically and never observed half-populated.
func (c *Cache) load() (*snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil {
		return c.snap, nil
	}

	byID, err := c.lister.List()
	if err != nil {
		return nil, err
	}

	records := make([]models.Session, 0, len(byID))
	for _, record := range byID {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].FileID < records[j].FileID
	})

	c.snap = &snapshot{records: records, byID: byID}
	logger.Debug("Cache: rebuilt with %d sessions", len(records))
	return c.snap, nil
}
