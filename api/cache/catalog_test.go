package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/surfyhou/Dota2Analyzer/api/services/testutil"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
)

func setupCatalogLoader(cacheOnly bool) (*CatalogLoader, *testutil.MockOpenDotaClient, *testutil.MockFreshnessCache) {
	mockClient := &testutil.MockOpenDotaClient{}
	mockCache := &testutil.MockFreshnessCache{}
	log, _ := logger.CreateLogger()

	loader := NewCatalogLoader(mockClient, mockCache, log, cacheOnly)
	return loader, mockClient, mockCache
}

func cachedHeroes() []opendota.Hero {
	return []opendota.Hero{
		{ID: 1, Name: "antimage", LocalizedName: "Anti-Mage"},
		{ID: 2, Name: "axe", LocalizedName: "Axe"},
	}
}

func cachedStats() []opendota.HeroStats {
	return []opendota.HeroStats{
		{ID: 1, ProWin: 55, ProPick: 100},
		{ID: 2, ProWin: 10, ProPick: 0},
	}
}

func cachedItems() map[string]opendota.ItemConstants {
	bkbID := 116
	return map[string]opendota.ItemConstants{
		"Black_King_Bar": {
			ID:          &bkbID,
			DisplayName: "Black King Bar",
			Components:  []string{"ogre_axe", "mithril_hammer", "recipe_black_king_bar"},
		},
	}
}

func expectCachedCatalogs(mockCache *testutil.MockFreshnessCache) {
	mockCache.On("GetHeroes", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedHeroes(), true)
	mockCache.On("GetHeroStats", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedStats(), true)
	mockCache.On("GetItemConstants", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedItems(), true)
}

func TestEnsureLoadedFromCacheSkipsProvider(t *testing.T) {
	loader, mockClient, mockCache := setupCatalogLoader(false)
	expectCachedCatalogs(mockCache)

	loader.EnsureLoaded(context.Background())

	assert.Equal(t, "Anti-Mage", loader.HeroName(1))
	assert.Equal(t, "axe", loader.HeroKey(2))

	rate, ok := loader.HeroWinRate(1)
	assert.True(t, ok)
	assert.InDelta(t, 0.55, rate, 0.001)

	// Zero pro picks means no win rate.
	_, ok = loader.HeroWinRate(2)
	assert.False(t, ok)

	mockClient.AssertNotCalled(t, "GetHeroes", mock.Anything)
	mockClient.AssertNotCalled(t, "GetHeroStats", mock.Anything)
	mockClient.AssertNotCalled(t, "GetItemConstants", mock.Anything)
}

func TestEnsureLoadedFetchesWhenCacheEmpty(t *testing.T) {
	loader, mockClient, mockCache := setupCatalogLoader(false)

	mockCache.On("GetHeroes", mock.Anything, mock.AnythingOfType("time.Duration")).Return([]opendota.Hero{}, false)
	mockCache.On("GetHeroStats", mock.Anything, mock.AnythingOfType("time.Duration")).Return([]opendota.HeroStats{}, false)
	mockCache.On("GetItemConstants", mock.Anything, mock.AnythingOfType("time.Duration")).Return(map[string]opendota.ItemConstants{}, false)

	mockClient.On("GetHeroes", mock.Anything).Return(cachedHeroes(), nil)
	mockClient.On("GetHeroStats", mock.Anything).Return(cachedStats(), nil)
	mockClient.On("GetItemConstants", mock.Anything).Return(cachedItems(), nil)

	mockCache.On("SaveHeroes", mock.Anything, cachedHeroes()).Return()
	mockCache.On("SaveHeroStats", mock.Anything, cachedStats()).Return()
	mockCache.On("SaveItemConstants", mock.Anything, cachedItems()).Return()

	loader.EnsureLoaded(context.Background())

	assert.Equal(t, "Anti-Mage", loader.HeroName(1))
	testutil.VerifyAllMocks(t, mockClient, mockCache)
}

func TestEnsureLoadedRefreshesHeroesMissingKeys(t *testing.T) {
	loader, mockClient, mockCache := setupCatalogLoader(false)

	stale := []opendota.Hero{{ID: 1, Name: "", LocalizedName: "Anti-Mage"}}
	mockCache.On("GetHeroes", mock.Anything, mock.AnythingOfType("time.Duration")).Return(stale, true)
	mockCache.On("GetHeroStats", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedStats(), true)
	mockCache.On("GetItemConstants", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedItems(), true)

	mockClient.On("GetHeroes", mock.Anything).Return(cachedHeroes(), nil)
	mockCache.On("SaveHeroes", mock.Anything, cachedHeroes()).Return()

	loader.EnsureLoaded(context.Background())

	assert.Equal(t, "antimage", loader.HeroKey(1))
	testutil.VerifyAllMocks(t, mockClient, mockCache)
}

func TestEnsureLoadedCacheOnlyToleratesEmptyCache(t *testing.T) {
	loader, mockClient, mockCache := setupCatalogLoader(true)

	mockCache.On("GetHeroes", mock.Anything, mock.AnythingOfType("time.Duration")).Return([]opendota.Hero{}, false)
	mockCache.On("GetHeroStats", mock.Anything, mock.AnythingOfType("time.Duration")).Return([]opendota.HeroStats{}, false)
	mockCache.On("GetItemConstants", mock.Anything, mock.AnythingOfType("time.Duration")).Return(map[string]opendota.ItemConstants{}, false)

	loader.EnsureLoaded(context.Background())

	// Placeholder names keep the pipeline readable without a catalog.
	assert.Equal(t, "Hero7", loader.HeroName(7))
	assert.Equal(t, "", loader.HeroKey(7))

	mockClient.AssertNotCalled(t, "GetHeroes", mock.Anything)
}

func TestItemLookupsAreCaseInsensitive(t *testing.T) {
	loader, _, mockCache := setupCatalogLoader(false)
	expectCachedCatalogs(mockCache)

	loader.EnsureLoaded(context.Background())

	item, ok := loader.ItemByKey("black_king_bar")
	assert.True(t, ok)
	assert.Equal(t, "Black King Bar", item.DisplayName)

	item, ok = loader.ItemByKey("BLACK_KING_BAR")
	assert.True(t, ok)
	assert.Equal(t, "Black King Bar", item.DisplayName)

	key, ok := loader.ItemKeyByID(116)
	assert.True(t, ok)
	assert.Equal(t, "black_king_bar", key)

	_, ok = loader.ItemKeyByID(0)
	assert.False(t, ok)
}

func TestEnsureLoadedLoadsOnceUnderConcurrency(t *testing.T) {
	loader, _, mockCache := setupCatalogLoader(false)

	// .Once() makes a double load fail the expectations.
	mockCache.On("GetHeroes", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedHeroes(), true).Once()
	mockCache.On("GetHeroStats", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedStats(), true).Once()
	mockCache.On("GetItemConstants", mock.Anything, mock.AnythingOfType("time.Duration")).Return(cachedItems(), true).Once()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.EnsureLoaded(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, "Anti-Mage", loader.HeroName(1))
	testutil.VerifyAllMocks(t, mockCache)
}

func TestLookupsBeforeLoadAreSafe(t *testing.T) {
	loader, _, _ := setupCatalogLoader(false)

	assert.Equal(t, "Hero1", loader.HeroName(1))
	assert.Equal(t, "", loader.HeroKey(1))

	_, ok := loader.HeroWinRate(1)
	assert.False(t, ok)

	_, ok = loader.ItemByKey("black_king_bar")
	assert.False(t, ok)
}
