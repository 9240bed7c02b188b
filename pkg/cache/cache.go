// Package cache provides content-addressed memoization of pair detection
// results. It uses patrickmn/go-cache for TTL-based caching so repeated
// engine invocations over unchanged snapshots skip detector work.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/readtrack/syncguard/pkg/conflicts"
)

// Key addresses the detection result for one record pair. Identity alone
// is not enough: the content digests guarantee that any material field
// change on either side produces a different key, and the type set
// guarantees that a result computed for a restricted detector allow-list
// is never reused for a broader one.
type Key struct {
	IDA     string
	IDB     string
	DigestA uint64
	DigestB uint64
	Types   string
}

// NewKey builds a cache key for a record pair and the requested conflict
// types. The type set is sorted so the key is independent of request
// order.
func NewKey(idA, idB string, digestA, digestB uint64, types []conflicts.Type) Key {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	sort.Strings(names)

	return Key{
		IDA:     idA,
		IDB:     idB,
		DigestA: digestA,
		DigestB: digestB,
		Types:   strings.Join(names, ","),
	}
}

// String renders the key in the flat form used by the backing store.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%016x|%016x|%s", k.IDA, k.IDB, k.DigestA, k.DigestB, k.Types)
}

// Cache is the backend contract for pair-result memoization. All methods
// must be safe for concurrent use; multiple pair detections may be in
// flight at once. A backend failure must degrade to always-miss, never
// surface to detection.
type Cache interface {
	// Get returns the cached conflict list for a key, if present.
	Get(key Key) ([]conflicts.Conflict, bool)

	// Set stores the conflict list computed for a key.
	Set(key Key, result []conflicts.Conflict)

	// Cleanup evicts expired entries.
	Cleanup()

	// Flush removes every entry.
	Flush()

	// ItemCount returns the number of live entries.
	ItemCount() int
}

// Memory is the default in-process Cache backed by go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-memory cache. defaultTTL bounds how long a pair
// result remains reusable; cleanupInterval is how often expired entries
// are removed from memory.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached conflict list.
func (m *Memory) Get(key Key) ([]conflicts.Conflict, bool) {
	v, ok := m.store.Get(key.String())
	if !ok {
		return nil, false
	}
	result, ok := v.([]conflicts.Conflict)
	return result, ok
}

// Set stores a conflict list with the default TTL.
func (m *Memory) Set(key Key, result []conflicts.Conflict) {
	m.store.Set(key.String(), result, gocache.DefaultExpiration)
}

// Cleanup removes expired entries.
func (m *Memory) Cleanup() {
	m.store.DeleteExpired()
}

// Flush removes all entries.
func (m *Memory) Flush() {
	m.store.Flush()
}

// ItemCount returns the number of live entries.
func (m *Memory) ItemCount() int {
	return m.store.ItemCount()
}
