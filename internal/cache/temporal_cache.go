package cache

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"
)

// entry stores a cached value with its creation and expiration timestamps.
// Entries never leave the cache; callers only see values.
type entry[V any] struct {
	Value     V         `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (e entry[V]) expired(at time.Time) bool {
	return !at.Before(e.ExpiresAt)
}

// Options controls construction of a TemporalCache.
type Options struct {
	// MaxEntries bounds the number of entries held, expired or not.
	// Defaults to 100 when <= 0.
	MaxEntries int

	// DefaultTTL applies when Set is called with ttl <= 0.
	// Defaults to 5 minutes when <= 0.
	DefaultTTL time.Duration

	// Eviction selects the capacity policy. Defaults to FIFO.
	Eviction PolicyType

	// Store enables durable persistence when non-nil. Every mutation
	// re-serializes the full mapping under Name; Clear removes the record.
	Store Store

	// Name is the durable record name for this cache instance.
	Name string
}

// TemporalCache is a bounded string-keyed cache with per-entry TTL, lazy
// expiry on access, pluggable eviction, and optional best-effort persistence.
// One instance per entity kind is created at startup and lives for the
// process lifetime.
type TemporalCache[V any] struct {
	mu     sync.Mutex
	items  map[string]entry[V]
	policy Policy
	opts   Options
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// New constructs a TemporalCache. If persistence is enabled, the previous
// snapshot is loaded from the store (a read or parse failure is logged and
// the cache starts empty) and anything that expired while the process was
// down is swept immediately.
func New[V any](opts Options) *TemporalCache[V] {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 100
	}
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}
	c := &TemporalCache[V]{
		items:  make(map[string]entry[V]),
		policy: newPolicy(opts.Eviction),
		opts:   opts,
	}
	if opts.Store != nil {
		c.hydrate()
		c.PurgeExpired()
	}
	return c
}

func (c *TemporalCache[V]) hydrate() {
	payload, ok, err := c.opts.Store.Read(c.opts.Name)
	if err != nil {
		log.Printf("cache %q: failed to read snapshot, starting empty: %v", c.opts.Name, err)
		return
	}
	if !ok {
		return
	}
	var items map[string]entry[V]
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		log.Printf("cache %q: failed to parse snapshot, starting empty: %v", c.opts.Name, err)
		return
	}
	c.items = items

	// Re-register keys oldest-first so FIFO order survives a restart.
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return items[keys[i]].CreatedAt.Before(items[keys[j]].CreatedAt)
	})
	for _, k := range keys {
		c.policy.OnPut(k)
	}
}

// persistLocked re-serializes the full mapping to the durable store.
// Write failures are logged and otherwise ignored. Caller holds c.mu.
func (c *TemporalCache[V]) persistLocked() {
	if c.opts.Store == nil {
		return
	}
	payload, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("cache %q: failed to serialize snapshot: %v", c.opts.Name, err)
		return
	}
	if err := c.opts.Store.Write(c.opts.Name, string(payload)); err != nil {
		log.Printf("cache %q: failed to persist snapshot: %v", c.opts.Name, err)
	}
}

// Set implements Cache.Set. Inserting a new key into a full cache evicts
// one entry first; overwriting an existing key never evicts and resets
// the entry's expiry.
func (c *TemporalCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		ttl = c.opts.DefaultTTL
	}
	if _, exists := c.items[key]; !exists && len(c.items) >= c.opts.MaxEntries {
		if victim := c.policy.Evict(); victim != "" {
			delete(c.items, victim)
		}
	}
	ts := now()
	c.items[key] = entry[V]{Value: value, CreatedAt: ts, ExpiresAt: ts.Add(ttl)}
	c.policy.OnPut(key)
	c.persistLocked()
}

// Get implements Cache.Get.
func (c *TemporalCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if e.expired(now()) {
		delete(c.items, key)
		c.policy.Remove(key)
		c.persistLocked()
		return zero, false
	}
	c.policy.OnGet(key)
	return e.Value, true
}

// Has implements Cache.Has.
func (c *TemporalCache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	if e.expired(now()) {
		delete(c.items, key)
		c.policy.Remove(key)
		c.persistLocked()
		return false
	}
	c.policy.OnGet(key)
	return true
}

// Delete implements Cache.Delete.
func (c *TemporalCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	c.policy.Remove(key)
	c.persistLocked()
}

// Clear implements Cache.Clear. The durable record is removed entirely
// rather than overwritten with an empty mapping.
func (c *TemporalCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry[V])
	c.policy = newPolicy(c.opts.Eviction)
	if c.opts.Store != nil {
		if err := c.opts.Store.Remove(c.opts.Name); err != nil {
			log.Printf("cache %q: failed to remove snapshot: %v", c.opts.Name, err)
		}
	}
}

// PurgeExpired implements Cache.PurgeExpired. Idempotent and safe to call
// at any time; the owning timer lives outside the cache.
func (c *TemporalCache[V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	removed := 0
	for k, e := range c.items {
		if e.expired(ts) {
			delete(c.items, k)
			c.policy.Remove(k)
			removed++
		}
	}
	if removed > 0 {
		c.persistLocked()
	}
	return removed
}

// Len implements Cache.Len.
func (c *TemporalCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys implements Cache.Keys.
func (c *TemporalCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

// Stats implements Cache.Stats.
func (c *TemporalCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:       len(c.items),
		MaxEntries: c.opts.MaxEntries,
		DefaultTTL: c.opts.DefaultTTL,
	}
}

// Ensure TemporalCache implements Cache at compile time.
var _ Cache[any] = (*TemporalCache[any])(nil)
