package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock implementations used on the analysis service tests.
// ============================================================================

// OpenDota client mock implementation.
type MockOpenDotaClient struct {
	mock.Mock
}

func (m *MockOpenDotaClient) GetRecentMatches(ctx context.Context, accountID int64, limit int) ([]opendota.RecentMatch, error) {
	args := m.Called(ctx, accountID, limit)
	return args.Get(0).([]opendota.RecentMatch), args.Error(1)
}

func (m *MockOpenDotaClient) GetPlayerMatches(ctx context.Context, accountID int64, limit int, offset int, lobbyType int) ([]opendota.RecentMatch, error) {
	args := m.Called(ctx, accountID, limit, offset, lobbyType)
	return args.Get(0).([]opendota.RecentMatch), args.Error(1)
}

func (m *MockOpenDotaClient) GetMatchDetail(ctx context.Context, matchID int64) (*opendota.MatchDetail, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(*opendota.MatchDetail), args.Error(1)
}

func (m *MockOpenDotaClient) GetHeroes(ctx context.Context) ([]opendota.Hero, error) {
	args := m.Called(ctx)
	return args.Get(0).([]opendota.Hero), args.Error(1)
}

func (m *MockOpenDotaClient) GetHeroStats(ctx context.Context) ([]opendota.HeroStats, error) {
	args := m.Called(ctx)
	return args.Get(0).([]opendota.HeroStats), args.Error(1)
}

func (m *MockOpenDotaClient) GetItemConstants(ctx context.Context) (map[string]opendota.ItemConstants, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]opendota.ItemConstants), args.Error(1)
}

func (m *MockOpenDotaClient) GetHeroBenchmarks(ctx context.Context, heroID int) (*opendota.BenchmarksResponse, error) {
	args := m.Called(ctx, heroID)
	return args.Get(0).(*opendota.BenchmarksResponse), args.Error(1)
}

func (m *MockOpenDotaClient) RequestParse(ctx context.Context, matchID int64) (bool, error) {
	args := m.Called(ctx, matchID)
	return args.Bool(0), args.Error(1)
}

// Freshness cache mock implementation.
type MockFreshnessCache struct {
	mock.Mock
}

func (m *MockFreshnessCache) GetRecentMatches(ctx context.Context, accountID int64, maxAge time.Duration) ([]opendota.RecentMatch, bool) {
	args := m.Called(ctx, accountID, maxAge)
	return args.Get(0).([]opendota.RecentMatch), args.Bool(1)
}

func (m *MockFreshnessCache) SaveRecentMatches(ctx context.Context, accountID int64, matches []opendota.RecentMatch) {
	m.Called(ctx, accountID, matches)
}

func (m *MockFreshnessCache) GetMatchDetail(ctx context.Context, matchID int64, maxAge time.Duration) (*opendota.MatchDetail, bool) {
	args := m.Called(ctx, matchID, maxAge)
	return args.Get(0).(*opendota.MatchDetail), args.Bool(1)
}

func (m *MockFreshnessCache) SaveMatchDetail(ctx context.Context, matchID int64, detail *opendota.MatchDetail) {
	m.Called(ctx, matchID, detail)
}

func (m *MockFreshnessCache) GetBenchmark(ctx context.Context, heroID int, maxAge time.Duration) (*opendota.BenchmarksResponse, bool) {
	args := m.Called(ctx, heroID, maxAge)
	return args.Get(0).(*opendota.BenchmarksResponse), args.Bool(1)
}

func (m *MockFreshnessCache) SaveBenchmark(ctx context.Context, heroID int, benchmarks *opendota.BenchmarksResponse) {
	m.Called(ctx, heroID, benchmarks)
}

func (m *MockFreshnessCache) GetHeroes(ctx context.Context, maxAge time.Duration) ([]opendota.Hero, bool) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).([]opendota.Hero), args.Bool(1)
}

func (m *MockFreshnessCache) SaveHeroes(ctx context.Context, heroes []opendota.Hero) {
	m.Called(ctx, heroes)
}

func (m *MockFreshnessCache) GetHeroStats(ctx context.Context, maxAge time.Duration) ([]opendota.HeroStats, bool) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).([]opendota.HeroStats), args.Bool(1)
}

func (m *MockFreshnessCache) SaveHeroStats(ctx context.Context, stats []opendota.HeroStats) {
	m.Called(ctx, stats)
}

func (m *MockFreshnessCache) GetItemConstants(ctx context.Context, maxAge time.Duration) (map[string]opendota.ItemConstants, bool) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).(map[string]opendota.ItemConstants), args.Bool(1)
}

func (m *MockFreshnessCache) SaveItemConstants(ctx context.Context, items map[string]opendota.ItemConstants) {
	m.Called(ctx, items)
}

// Catalog mock implementation.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) EnsureLoaded(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockCatalog) HeroName(heroID int) string {
	args := m.Called(heroID)
	return args.String(0)
}

func (m *MockCatalog) HeroKey(heroID int) string {
	args := m.Called(heroID)
	return args.String(0)
}

func (m *MockCatalog) HeroWinRate(heroID int) (float64, bool) {
	args := m.Called(heroID)
	return args.Get(0).(float64), args.Bool(1)
}

func (m *MockCatalog) ItemByKey(key string) (opendota.ItemConstants, bool) {
	args := m.Called(key)
	return args.Get(0).(opendota.ItemConstants), args.Bool(1)
}

func (m *MockCatalog) ItemKeyByID(itemID int) (string, bool) {
	args := m.Called(itemID)
	return args.String(0), args.Bool(1)
}

// Cache repository mock implementation.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetKey(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) SetKey(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Redis client mock implementation matching the cache seam.
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
