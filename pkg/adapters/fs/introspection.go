package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Document      string     `json:"document"`
	ReadOnly      bool       `json:"read_only"`
	Serializers   []string   `json:"serializers"`
	CachedCount   int        `json:"cached_companies"`
	CacheHits     int        `json:"cache_hits"`
	WatcherActive bool       `json:"watcher_active"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		Path:          r.Path,
		Document:      r.file,
		ReadOnly:      r.readOnly,
		Serializers:   serializers,
		CachedCount:   r.cache.Len(),
		CacheHits:     r.cache.Hits(),
		WatcherActive: r.watcherActive,
		LastLoad:      r.lastLoad,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
