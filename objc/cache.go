package objc

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Class cache
// ---------------------------------------------------------------------------

// ClassKey identifies a class cache entry. Plain class lookups leave the
// superclass absent; dynamically registered subclasses are keyed by their
// logical name and superclass.
type ClassKey struct {
	Name          string
	Superclass    string
	HasSuperclass bool
}

// ClassKeyFor returns the key for a class looked up by name alone.
func ClassKeyFor(name string) ClassKey {
	return ClassKey{Name: name}
}

// SubclassKey returns the logical key of a subclass of superclass.
func SubclassKey(name, superclass string) ClassKey {
	return ClassKey{Name: name, Superclass: superclass, HasSuperclass: true}
}

func (k ClassKey) String() string {
	if !k.HasSuperclass {
		return k.Name
	}
	return k.Superclass + "/" + k.Name
}

// ClassData is a resolved class stored in the cache. Classes live for the
// life of the process, so entries are never released.
type ClassData struct {
	Class Class
}

// CacheEntry is one row of a cache snapshot.
type CacheEntry struct {
	Key  ClassKey
	Data ClassData
}

// ClassCache memoizes class lookups against one runtime.
//
// Reads run concurrently; writes exclude everything else. Misses are never
// cached, so a class registered later elsewhere in the process is still
// found. If a panic escapes a critical section the cache is marked poisoned
// and from then on reports misses instead of panicking.
type ClassCache struct {
	rt       Runtime
	mu       sync.RWMutex
	entries  map[ClassKey]ClassData
	poisoned atomic.Bool
}

// NewClassCache creates an empty cache over rt.
func NewClassCache(rt Runtime) *ClassCache {
	return &ClassCache{
		rt:      rt,
		entries: make(map[ClassKey]ClassData),
	}
}

// Load returns the cached class for key, resolving key.Name through the
// runtime on a miss and saving the result when found.
func (c *ClassCache) Load(key ClassKey) (Class, bool) {
	var (
		data ClassData
		hit  bool
	)
	err := c.read(func(entries map[ClassKey]ClassData) {
		data, hit = entries[key]
	})
	if err != nil {
		return 0, false
	}
	if hit {
		return data.Class, true
	}

	cls := c.rt.GetClass(key.Name)
	if cls.IsNil() {
		log.Debugf("class cache miss: %s", key)
		return 0, false
	}
	if err := c.Save(key, ClassData{Class: cls}); err != nil {
		return 0, false
	}
	log.Debugf("class cache fill: %s -> %s", key, cls)
	return cls, true
}

// Save inserts or overwrites the entry for key.
func (c *ClassCache) Save(key ClassKey, data ClassData) error {
	return c.write(func(entries map[ClassKey]ClassData) {
		entries[key] = data
	})
}

// Len returns the number of cached entries.
func (c *ClassCache) Len() int {
	n := 0
	_ = c.read(func(entries map[ClassKey]ClassData) { n = len(entries) })
	return n
}

// Snapshot returns all entries sorted by key.
func (c *ClassCache) Snapshot() []CacheEntry {
	var result []CacheEntry
	_ = c.read(func(entries map[ClassKey]ClassData) {
		result = make([]CacheEntry, 0, len(entries))
		for k, v := range entries {
			result = append(result, CacheEntry{Key: k, Data: v})
		}
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key.String() < result[j].Key.String()
	})
	return result
}

// Poisoned reports whether the cache has degraded to always-miss.
func (c *ClassCache) Poisoned() bool { return c.poisoned.Load() }

func (c *ClassCache) read(fn func(map[ClassKey]ClassData)) (err error) {
	if c.poisoned.Load() {
		return ErrCacheUnavailable
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	defer c.recoverPoison(&err)
	fn(c.entries)
	return nil
}

func (c *ClassCache) write(fn func(map[ClassKey]ClassData)) (err error) {
	if c.poisoned.Load() {
		return ErrCacheUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverPoison(&err)
	fn(c.entries)
	return nil
}

func (c *ClassCache) recoverPoison(err *error) {
	if r := recover(); r != nil {
		c.poisoned.Store(true)
		log.Errorf("class cache poisoned: %v", r)
		*err = fmt.Errorf("%w: %v", ErrCacheUnavailable, r)
	}
}
