package analysis

import (
	"context"
	"fmt"

	"github.com/surfyhou/Dota2Analyzer/api/cache"
	"github.com/surfyhou/Dota2Analyzer/api/services/testutil"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
)

// stubCatalog is a map-backed catalog for tests where the exact lookup calls
// don't matter, only the resolved values.
type stubCatalog struct {
	heroNames map[int]string
	heroKeys  map[int]string
	winRates  map[int]float64
	items     map[string]opendota.ItemConstants
	itemKeys  map[int]string
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		heroNames: make(map[int]string),
		heroKeys:  make(map[int]string),
		winRates:  make(map[int]float64),
		items:     make(map[string]opendota.ItemConstants),
		itemKeys:  make(map[int]string),
	}
}

func (c *stubCatalog) EnsureLoaded(ctx context.Context) {}

func (c *stubCatalog) HeroName(heroID int) string {
	if name, ok := c.heroNames[heroID]; ok {
		return name
	}
	return fmt.Sprintf("Hero%d", heroID)
}

func (c *stubCatalog) HeroKey(heroID int) string {
	return c.heroKeys[heroID]
}

func (c *stubCatalog) HeroWinRate(heroID int) (float64, bool) {
	rate, ok := c.winRates[heroID]
	return rate, ok
}

func (c *stubCatalog) ItemByKey(key string) (opendota.ItemConstants, bool) {
	item, ok := c.items[key]
	return item, ok
}

func (c *stubCatalog) ItemKeyByID(itemID int) (string, bool) {
	key, ok := c.itemKeys[itemID]
	return key, ok
}

var _ cache.Catalog = (*stubCatalog)(nil)

// Helper to initialize the service with mocks.
func setupAnalysisService() (*AnalysisService, *testutil.MockOpenDotaClient, *testutil.MockFreshnessCache, *stubCatalog) {
	mockClient := &testutil.MockOpenDotaClient{}
	mockCache := &testutil.MockFreshnessCache{}
	catalog := newStubCatalog()
	log, _ := logger.CreateLogger()

	service := &AnalysisService{
		client:  mockClient,
		cache:   mockCache,
		catalog: catalog,
		log:     log,
	}
	return service, mockClient, mockCache, catalog
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
