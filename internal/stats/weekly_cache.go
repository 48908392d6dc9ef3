package stats

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// WeeklyCache keeps computed weekly snapshots until the owning ledger
// changes or the TTL runs out, whichever comes first. Cached entries
// are derived data only; a miss just means recomputing from a fresh
// snapshot.
type WeeklyCache struct {
	cache   *freecache.Cache
	ttlSecs int

	mu sync.Mutex
	// deepest week offset cached per owner, so Invalidate covers every
	// week that can actually be in the cache
	deepest map[int]int
}

const weeklyCacheSize = 10 * 1024 * 1024

func NewWeeklyCache(ttlSecs int) *WeeklyCache {
	return &WeeklyCache{
		cache:   freecache.NewCache(weeklyCacheSize),
		ttlSecs: ttlSecs,
		deepest: make(map[int]int),
	}
}

func weeklyCacheKey(ownerID, weekOffset int) []byte {
	return []byte(fmt.Sprintf("weekly::%d::%d", ownerID, weekOffset))
}

// Get returns the cached snapshot for the owner and offset, or nil.
// The public cross-user snapshot uses owner id 0.
func (c *WeeklyCache) Get(ownerID, weekOffset int) *WeeklySnapshot {
	cached, err := c.cache.Get(weeklyCacheKey(ownerID, weekOffset))
	if err != nil {
		return nil
	}

	var weekly WeeklySnapshot
	if err := json.Unmarshal(cached, &weekly); err != nil {
		log.Errorf("failed to unmarshal cached weekly snapshot for user %d: %s", ownerID, err)
		return nil
	}
	return &weekly
}

func (c *WeeklyCache) Set(ownerID, weekOffset int, weekly *WeeklySnapshot) {
	weeklyJson, err := json.Marshal(weekly)
	if err != nil {
		log.Errorf("failed to marshal weekly snapshot for user %d: %s", ownerID, err)
		return
	}
	if err := c.cache.Set(weeklyCacheKey(ownerID, weekOffset), weeklyJson, c.ttlSecs); err != nil {
		log.Debugf("failed to cache weekly snapshot for user %d: %s", ownerID, err)
		return
	}

	c.mu.Lock()
	if weekOffset > c.deepest[ownerID] {
		c.deepest[ownerID] = weekOffset
	}
	c.mu.Unlock()
}

// Invalidate drops every cached week of one owner, called on each
// ledger change for that owner.
func (c *WeeklyCache) Invalidate(ownerID int) {
	c.mu.Lock()
	maxOffset, ok := c.deepest[ownerID]
	if ok {
		delete(c.deepest, ownerID)
	}
	c.mu.Unlock()

	for offset := 0; offset <= maxOffset; offset++ {
		c.cache.Del(weeklyCacheKey(ownerID, offset))
	}
}
