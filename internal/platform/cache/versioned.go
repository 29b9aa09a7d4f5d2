package cache

import (
	"strconv"
	"sync"
)

// Versions tracks a monotonically increasing counter per namespace.
// Derived-view cache keys embed the current version, so a single Bump
// invalidates every cached view of that namespace without enumerating keys.
type Versions struct {
	mu       sync.RWMutex
	counters map[string]uint64
}

func NewVersions() *Versions {
	return &Versions{counters: make(map[string]uint64)}
}

func (v *Versions) Current(namespace string) uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.counters[namespace]
}

func (v *Versions) Bump(namespace string) {
	if namespace == "" {
		return
	}
	v.mu.Lock()
	v.counters[namespace]++
	v.mu.Unlock()
}

// Key builds a cache key scoped to the namespace's current version.
func (v *Versions) Key(namespace, suffix string) string {
	return namespace + ":v" + strconv.FormatUint(v.Current(namespace), 10) + ":" + suffix
}
