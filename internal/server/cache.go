package server

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const siteKey = "site"

// siteCache holds one assembled snapshot of the whole site, keyed by
// route. Dev snapshots expire quickly and are flushed by the watcher;
// prod snapshots never expire.
type siteCache struct {
	entries *gocache.Cache
}

func newSiteCache(ttl time.Duration) *siteCache {
	if ttl <= 0 {
		return &siteCache{entries: gocache.New(gocache.NoExpiration, 0)}
	}
	return &siteCache{entries: gocache.New(ttl, 2*ttl)}
}

func (c *siteCache) get() (map[string]string, bool) {
	v, ok := c.entries.Get(siteKey)
	if !ok {
		return nil, false
	}
	pages, ok := v.(map[string]string)
	return pages, ok
}

func (c *siteCache) set(pages map[string]string) {
	c.entries.Set(siteKey, pages, gocache.DefaultExpiration)
}

func (c *siteCache) flush() {
	c.entries.Flush()
}
