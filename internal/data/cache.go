package data

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/scenario"
	"hybrid-bess-sim/internal/timeseries"
)

// ResultCache is an explicit content-addressed cache for comparison results,
// keyed by a hash of (Configuration, series identity). It exists so repeated
// dashboard interactions with unchanged inputs do not re-run the simulation.
// It is constructed explicitly by the caller; there is no global instance.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	result    *scenario.Comparison
	expiresAt time.Time
}

// NewResultCache creates a cache whose entries expire after ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &ResultCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Close stops the background cleanup goroutine. The cache stays usable after
// Close; entries still expire on read. Safe to call more than once.
func (c *ResultCache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

// CacheKey derives the content address of a (configuration, series) pair.
// Identical inputs always produce the same key; any field change produces a
// different one.
func CacheKey(cfg *model.Configuration, series *timeseries.Series) string {
	raw, _ := json.Marshal(cfg)
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte(series.Fingerprint()))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached comparison if present and not expired.
func (c *ResultCache) Get(key string) (*scenario.Comparison, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

// Set stores a comparison under its content address.
func (c *ResultCache) Set(key string, result *scenario.Comparison) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

func (c *ResultCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.store {
				if now.After(entry.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
