package bbcode

import (
	"sync"

	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/langdetect"
	"github.com/cerealean/wabbc/pkg/pipeline"
	"github.com/cerealean/wabbc/pkg/pipeline/rules"
)

// profile identifies one resolved pipeline.
type profile struct {
	dialect config.Dialect
	infer   bool
}

type cacheEntry struct {
	once     sync.Once
	pipeline *pipeline.Pipeline
	err      error
}

// Cache holds resolved pipelines, one per profile. Each profile is resolved
// at most once, even under concurrent first use. A Cache is safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[profile]*cacheEntry
	build   func(profile) (*pipeline.Pipeline, error)
}

// NewCache creates an empty pipeline cache.
func NewCache() *Cache {
	return newCache(buildPipeline)
}

func newCache(build func(profile) (*pipeline.Pipeline, error)) *Cache {
	return &Cache{
		entries: make(map[profile]*cacheEntry),
		build:   build,
	}
}

func (c *Cache) get(key profile) (*pipeline.Pipeline, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.pipeline, entry.err = c.build(key)
	})
	return entry.pipeline, entry.err
}

// Len returns the number of profiles requested so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func buildPipeline(key profile) (*pipeline.Pipeline, error) {
	var opts rules.Options
	if key.infer {
		opts.CodeLanguage = func(code string) string {
			return langdetect.Infer([]byte(code))
		}
	}
	return rules.NewPipeline(key.dialect, opts)
}
