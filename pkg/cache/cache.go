// Package cache provides an LRU cache of file analysis results with disk persistence.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/report"
)

// formatVersion is bumped whenever the analysis or the persisted layout changes
// in a way that invalidates stored results.
const formatVersion = 1

// Key derives the cache key for a source file from its language and content.
func Key(lang frontend.Language, content []byte) string {
	h := sha256.New()
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is a cached result with metadata.
type Entry struct {
	Key       string       `msgpack:"key"`
	File      *report.File `msgpack:"file"`
	CreatedAt time.Time    `msgpack:"created_at"`
}

// Options configures the cache.
type Options struct {
	// MaxEntries is the maximum number of entries.
	// 0 means unlimited.
	MaxEntries int

	// OnEvict is called when an entry is evicted to make room.
	OnEvict func(key string, f *report.File)
}

// Stats returns cache statistics.
type Stats struct {
	Length    int   `json:"length"`
	HitCount  int64 `json:"hit_count"`
	MissCount int64 `json:"miss_count"`
}

// LRUCache is an in-memory LRU cache of analysis results. It is safe for
// concurrent use.
type LRUCache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	lru        *list.List // most recently used at front
	maxEntries int
	onEvict    func(key string, f *report.File)
	hits       int64
	misses     int64
}

// New creates a new LRU cache with the given options.
func New(opts Options) *LRUCache {
	return &LRUCache{
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: opts.MaxEntries,
		onEvict:    opts.OnEvict,
	}
}

// Get retrieves a result and marks it most recently used.
func (c *LRUCache) Get(key string) (*report.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.items[key]
	if !found {
		c.misses++
		return nil, false
	}

	c.hits++
	c.lru.MoveToFront(el)
	return el.Value.(*Entry).File, true
}

// Set stores a result, evicting the least recently used entries if the cache is full.
func (c *LRUCache) Set(key string, f *report.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, exists := c.items[key]; exists {
		el.Value.(*Entry).File = f
		c.lru.MoveToFront(el)
		return
	}

	c.items[key] = c.lru.PushFront(&Entry{Key: key, File: f, CreatedAt: time.Now()})
	c.evictIfNeeded()
}

// Delete removes a key from the cache.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, found := c.items[key]; found {
		c.lru.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries from the cache.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of entries in the cache.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns the current cache statistics.
func (c *LRUCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Length: len(c.items), HitCount: c.hits, MissCount: c.misses}
}

// HitRate returns the cache hit rate.
func (c *LRUCache) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

func (c *LRUCache) evictIfNeeded() {
	for c.maxEntries > 0 && c.lru.Len() > c.maxEntries {
		el := c.lru.Back()
		entry := el.Value.(*Entry)
		c.lru.Remove(el)
		delete(c.items, entry.Key)

		if c.onEvict != nil {
			c.onEvict(entry.Key, entry.File)
		}
	}
}

type snapshot struct {
	Version int      `msgpack:"version"`
	Entries []*Entry `msgpack:"entries"` // most recently used first
}

// Save persists the cache to a writer using msgpack.
func (c *LRUCache) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := snapshot{Version: formatVersion, Entries: make([]*Entry, 0, c.lru.Len())}
	for el := c.lru.Front(); el != nil; el = el.Next() {
		data.Entries = append(data.Entries, el.Value.(*Entry))
	}

	return msgpack.NewEncoder(w).Encode(&data)
}

// Load replaces the cache contents with entries read from r. Snapshots
// written by a different format version are ignored.
func (c *LRUCache) Load(r io.Reader) error {
	var data snapshot
	if err := msgpack.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()

	if data.Version != formatVersion {
		return nil
	}

	for _, entry := range data.Entries {
		if entry == nil || entry.File == nil {
			continue
		}
		if _, dup := c.items[entry.Key]; dup {
			continue
		}
		c.items[entry.Key] = c.lru.PushBack(entry)
	}
	c.evictIfNeeded()

	return nil
}

// PersistToFile saves the cache to a file, creating parent directories.
func PersistToFile(c *LRUCache, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}

	if err := c.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFromFile loads the cache from a file.
func LoadFromFile(c *LRUCache, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No cache file is not an error
		}
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer f.Close()

	return c.Load(f)
}
