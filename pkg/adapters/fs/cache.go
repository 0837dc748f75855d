package fs

import (
	"os"
	"sync"
	"time"

	"github.com/aretw0/cofiy/pkg/core"
)

// docCache holds the last parsed document together with the file stamp it
// was parsed from. A load whose stamp matches skips reading and parsing.
type docCache struct {
	mu      sync.RWMutex
	valid   bool
	modTime time.Time
	size    int64
	doc     core.Document
	hits    int
}

func newDocCache() *docCache {
	return &docCache{}
}

// Get returns a copy of the cached document if info matches the stored stamp.
func (c *docCache) Get(info os.FileInfo) (core.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || !c.modTime.Equal(info.ModTime()) || c.size != info.Size() {
		return core.Document{}, false
	}
	c.hits++
	return c.doc.Clone(), true
}

// Set stores a copy of doc under the stamp from info.
func (c *docCache) Set(info os.FileInfo, doc core.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = true
	c.modTime = info.ModTime()
	c.size = info.Size()
	c.doc = doc.Clone()
}

// Invalidate drops the cached document.
func (c *docCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.doc = core.Document{}
}

// Len returns the number of companies currently cached.
func (c *docCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return 0
	}
	return len(c.doc.Companies)
}

// Hits returns how many loads were served from the cache.
func (c *docCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}
