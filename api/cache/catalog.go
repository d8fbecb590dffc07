package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
)

// Catalogs are nearly static, so cached copies stay valid for a long time.
const catalogMaxAge = 30 * 24 * time.Hour

// Catalog exposes the hero and item lookups backed by the loaded snapshot.
type Catalog interface {
	EnsureLoaded(ctx context.Context)
	HeroName(heroID int) string
	HeroKey(heroID int) string
	HeroWinRate(heroID int) (float64, bool)
	ItemByKey(key string) (opendota.ItemConstants, bool)
	ItemKeyByID(itemID int) (string, bool)
}

// catalogSnapshot is the immutable loaded state. It is built once and swapped
// in atomically, never mutated in place.
type catalogSnapshot struct {
	heroNames   map[int]string
	heroKeys    map[int]string
	winRates    map[int]float64
	items       map[string]opendota.ItemConstants
	itemIDToKey map[int]string
}

// CatalogLoader loads the catalogs once per process with a cache-or-fetch
// fallback, guarded so concurrent callers block on the first load.
type CatalogLoader struct {
	client    opendota.Client
	cache     FreshnessCache
	log       *logger.Logger
	cacheOnly bool

	gate sync.Mutex
	snap atomic.Pointer[catalogSnapshot]
}

// NewCatalogLoader creates the loader. Nothing is fetched until EnsureLoaded.
func NewCatalogLoader(client opendota.Client, cache FreshnessCache, log *logger.Logger, cacheOnly bool) *CatalogLoader {
	return &CatalogLoader{
		client:    client,
		cache:     cache,
		log:       log,
		cacheOnly: cacheOnly,
	}
}

// EnsureLoaded populates the snapshot on the first call.
// Concurrent callers wait on the same load instead of duplicating it.
func (c *CatalogLoader) EnsureLoaded(ctx context.Context) {
	if c.snap.Load() != nil {
		return
	}

	c.gate.Lock()
	defer c.gate.Unlock()
	if c.snap.Load() != nil {
		return
	}

	snap := &catalogSnapshot{
		heroNames:   make(map[int]string),
		heroKeys:    make(map[int]string),
		winRates:    make(map[int]float64),
		items:       make(map[string]opendota.ItemConstants),
		itemIDToKey: make(map[int]string),
	}

	c.loadHeroes(ctx, snap)
	c.loadHeroStats(ctx, snap)
	c.loadItemConstants(ctx, snap)

	c.snap.Store(snap)
	c.log.Infof("Catalog loaded. Heroes=%d Stats=%d Items=%d",
		len(snap.heroNames), len(snap.winRates), len(snap.items))
}

// loadHeroes fills the hero name and canonical key lookups.
func (c *CatalogLoader) loadHeroes(ctx context.Context, snap *catalogSnapshot) {
	heroes, ok := c.cache.GetHeroes(ctx, catalogMaxAge)

	switch {
	case !ok || len(heroes) == 0:
		if c.cacheOnly {
			c.log.Warnf("Hero cache empty and cache-only enabled. Skipping OpenDota.")
			break
		}
		c.log.Infof("Hero cache empty, fetching from OpenDota")
		fetched, err := c.client.GetHeroes(ctx)
		if err != nil {
			c.log.Errorf("Failed to fetch heroes: %v", err)
			break
		}
		heroes = fetched
		if len(heroes) > 0 {
			c.cache.SaveHeroes(ctx, heroes)
		}
	case missingHeroKeys(heroes):
		if c.cacheOnly {
			c.log.Warnf("Hero cache missing canonical keys and cache-only enabled.")
			break
		}
		c.log.Infof("Hero cache missing canonical keys, refreshing from OpenDota")
		refreshed, err := c.client.GetHeroes(ctx)
		if err != nil {
			c.log.Errorf("Failed to refresh heroes: %v", err)
			break
		}
		if len(refreshed) > 0 {
			heroes = refreshed
			c.cache.SaveHeroes(ctx, heroes)
		}
	}

	for _, h := range heroes {
		snap.heroNames[h.ID] = h.LocalizedName
		snap.heroKeys[h.ID] = h.Name
	}
}

// loadHeroStats fills the win rate lookup from the pro pick counts.
func (c *CatalogLoader) loadHeroStats(ctx context.Context, snap *catalogSnapshot) {
	stats, ok := c.cache.GetHeroStats(ctx, catalogMaxAge)
	if !ok || len(stats) == 0 {
		if c.cacheOnly {
			c.log.Warnf("Hero stats cache empty and cache-only enabled.")
			return
		}
		c.log.Infof("Hero stats cache empty, fetching from OpenDota")
		fetched, err := c.client.GetHeroStats(ctx)
		if err != nil {
			c.log.Errorf("Failed to fetch hero stats: %v", err)
			return
		}
		stats = fetched
		if len(stats) > 0 {
			c.cache.SaveHeroStats(ctx, stats)
		}
	}

	for _, s := range stats {
		if s.ProPick > 0 {
			snap.winRates[s.ID] = float64(s.ProWin) / float64(s.ProPick)
		}
	}
}

// loadItemConstants fills the item lookups, keyed case-insensitively.
func (c *CatalogLoader) loadItemConstants(ctx context.Context, snap *catalogSnapshot) {
	items, ok := c.cache.GetItemConstants(ctx, catalogMaxAge)

	switch {
	case !ok || len(items) == 0:
		if c.cacheOnly {
			c.log.Warnf("Item constants cache empty and cache-only enabled.")
			break
		}
		c.log.Infof("Item constants cache empty, fetching from OpenDota")
		fetched, err := c.client.GetItemConstants(ctx)
		if err != nil {
			c.log.Errorf("Failed to fetch item constants: %v", err)
			break
		}
		items = fetched
		if len(items) > 0 {
			c.cache.SaveItemConstants(ctx, items)
		}
	case missingItemIDs(items) || missingItemComponents(items):
		if c.cacheOnly {
			c.log.Warnf("Item constants cache structurally incomplete and cache-only enabled.")
			break
		}
		c.log.Infof("Item constants cache structurally incomplete, refreshing from OpenDota")
		refreshed, err := c.client.GetItemConstants(ctx)
		if err != nil {
			c.log.Errorf("Failed to refresh item constants: %v", err)
			break
		}
		if len(refreshed) > 0 {
			items = refreshed
			c.cache.SaveItemConstants(ctx, items)
		}
	}

	for key, item := range items {
		if key == "" {
			continue
		}
		lower := strings.ToLower(key)
		snap.items[lower] = item
		if item.ID != nil && *item.ID > 0 {
			if _, exists := snap.itemIDToKey[*item.ID]; !exists {
				snap.itemIDToKey[*item.ID] = lower
			}
		}
	}
}

// missingHeroKeys reports whether any hero lacks its canonical key.
func missingHeroKeys(heroes []opendota.Hero) bool {
	for _, h := range heroes {
		if strings.TrimSpace(h.Name) == "" {
			return true
		}
	}
	return false
}

// missingItemIDs reports whether every item lacks a numeric id.
func missingItemIDs(items map[string]opendota.ItemConstants) bool {
	for _, item := range items {
		if item.ID != nil {
			return false
		}
	}
	return true
}

// missingItemComponents reports whether every item lacks a component list.
func missingItemComponents(items map[string]opendota.ItemConstants) bool {
	for _, item := range items {
		if item.Components != nil {
			return false
		}
	}
	return true
}

// HeroName returns the display name, or a synthesized placeholder.
func (c *CatalogLoader) HeroName(heroID int) string {
	if snap := c.snap.Load(); snap != nil {
		if name, ok := snap.heroNames[heroID]; ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("Hero%d", heroID)
}

// HeroKey returns the canonical hero key, or an empty string when unknown.
func (c *CatalogLoader) HeroKey(heroID int) string {
	if snap := c.snap.Load(); snap != nil {
		return snap.heroKeys[heroID]
	}
	return ""
}

// HeroWinRate returns the pro win rate of the hero when known.
func (c *CatalogLoader) HeroWinRate(heroID int) (float64, bool) {
	if snap := c.snap.Load(); snap != nil {
		rate, ok := snap.winRates[heroID]
		return rate, ok
	}
	return 0, false
}

// ItemByKey returns the item metadata for the given key.
func (c *CatalogLoader) ItemByKey(key string) (opendota.ItemConstants, bool) {
	if snap := c.snap.Load(); snap != nil {
		item, ok := snap.items[strings.ToLower(key)]
		return item, ok
	}
	return opendota.ItemConstants{}, false
}

// ItemKeyByID resolves a numeric slot id to the item key.
func (c *CatalogLoader) ItemKeyByID(itemID int) (string, bool) {
	if itemID <= 0 {
		return "", false
	}
	if snap := c.snap.Load(); snap != nil {
		key, ok := snap.itemIDToKey[itemID]
		return key, ok
	}
	return "", false
}
