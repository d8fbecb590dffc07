package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/surfyhou/Dota2Analyzer/api/repositories"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
)

// Key templates for the cached entity kinds.
const (
	recentMatchesKey = "matches:recent:%d"
	matchDetailKey   = "matches:detail:%d"
	benchmarkKey     = "benchmarks:hero:%d"
	heroesKey        = "catalog:heroes"
	heroStatsKey     = "catalog:herostats"
	itemConstantsKey = "catalog:items"
)

// RedisClient is the slice of the redis client the cache needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// envelope wraps a payload with the time it was written.
// Freshness is decided at read time against a caller supplied age ceiling, so
// entries are stored without a redis TTL and never evicted on a stale read.
type envelope struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Fresh is the read-time freshness predicate.
func Fresh(now time.Time, updatedAt time.Time, maxAge time.Duration) bool {
	return now.Sub(updatedAt) <= maxAge
}

// FreshnessCache is the public interface for the cached provider payloads.
// A Get returns false when no entry exists or the entry is older than maxAge;
// a Save is a whole-payload replace that resets the entry timestamp.
type FreshnessCache interface {
	GetRecentMatches(ctx context.Context, accountID int64, maxAge time.Duration) ([]opendota.RecentMatch, bool)
	SaveRecentMatches(ctx context.Context, accountID int64, matches []opendota.RecentMatch)
	GetMatchDetail(ctx context.Context, matchID int64, maxAge time.Duration) (*opendota.MatchDetail, bool)
	SaveMatchDetail(ctx context.Context, matchID int64, detail *opendota.MatchDetail)
	GetBenchmark(ctx context.Context, heroID int, maxAge time.Duration) (*opendota.BenchmarksResponse, bool)
	SaveBenchmark(ctx context.Context, heroID int, benchmarks *opendota.BenchmarksResponse)
	GetHeroes(ctx context.Context, maxAge time.Duration) ([]opendota.Hero, bool)
	SaveHeroes(ctx context.Context, heroes []opendota.Hero)
	GetHeroStats(ctx context.Context, maxAge time.Duration) ([]opendota.HeroStats, bool)
	SaveHeroStats(ctx context.Context, stats []opendota.HeroStats)
	GetItemConstants(ctx context.Context, maxAge time.Duration) (map[string]opendota.ItemConstants, bool)
	SaveItemConstants(ctx context.Context, items map[string]opendota.ItemConstants)
}

// Redis backed cache with a durable postgres copy.
type freshnessCache struct {
	redis RedisClient
	repo  repositories.CacheRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewFreshnessCache creates the freshness cache over the given stores.
func NewFreshnessCache(redis RedisClient, repo repositories.CacheRepository, log *logger.Logger) FreshnessCache {
	return &freshnessCache{
		redis: redis,
		repo:  repo,
		log:   log,
		now:   time.Now,
	}
}

// GetRecentMatches retrieves the cached match list of the account.
func (fc *freshnessCache) GetRecentMatches(ctx context.Context, accountID int64, maxAge time.Duration) ([]opendota.RecentMatch, bool) {
	return getEntry[[]opendota.RecentMatch](fc, ctx, fmt.Sprintf(recentMatchesKey, accountID), maxAge)
}

// SaveRecentMatches replaces the cached match list of the account.
func (fc *freshnessCache) SaveRecentMatches(ctx context.Context, accountID int64, matches []opendota.RecentMatch) {
	fc.saveEntry(ctx, fmt.Sprintf(recentMatchesKey, accountID), matches)
}

// GetMatchDetail retrieves a cached match detail.
func (fc *freshnessCache) GetMatchDetail(ctx context.Context, matchID int64, maxAge time.Duration) (*opendota.MatchDetail, bool) {
	return getEntry[*opendota.MatchDetail](fc, ctx, fmt.Sprintf(matchDetailKey, matchID), maxAge)
}

// SaveMatchDetail replaces a cached match detail.
func (fc *freshnessCache) SaveMatchDetail(ctx context.Context, matchID int64, detail *opendota.MatchDetail) {
	fc.saveEntry(ctx, fmt.Sprintf(matchDetailKey, matchID), detail)
}

// GetBenchmark retrieves the cached percentile curves of a hero.
func (fc *freshnessCache) GetBenchmark(ctx context.Context, heroID int, maxAge time.Duration) (*opendota.BenchmarksResponse, bool) {
	return getEntry[*opendota.BenchmarksResponse](fc, ctx, fmt.Sprintf(benchmarkKey, heroID), maxAge)
}

// SaveBenchmark replaces the cached percentile curves of a hero.
func (fc *freshnessCache) SaveBenchmark(ctx context.Context, heroID int, benchmarks *opendota.BenchmarksResponse) {
	fc.saveEntry(ctx, fmt.Sprintf(benchmarkKey, heroID), benchmarks)
}

// GetHeroes retrieves the cached hero catalog.
func (fc *freshnessCache) GetHeroes(ctx context.Context, maxAge time.Duration) ([]opendota.Hero, bool) {
	return getEntry[[]opendota.Hero](fc, ctx, heroesKey, maxAge)
}

// SaveHeroes replaces the cached hero catalog.
func (fc *freshnessCache) SaveHeroes(ctx context.Context, heroes []opendota.Hero) {
	fc.saveEntry(ctx, heroesKey, heroes)
}

// GetHeroStats retrieves the cached hero statistics.
func (fc *freshnessCache) GetHeroStats(ctx context.Context, maxAge time.Duration) ([]opendota.HeroStats, bool) {
	return getEntry[[]opendota.HeroStats](fc, ctx, heroStatsKey, maxAge)
}

// SaveHeroStats replaces the cached hero statistics.
func (fc *freshnessCache) SaveHeroStats(ctx context.Context, stats []opendota.HeroStats) {
	fc.saveEntry(ctx, heroStatsKey, stats)
}

// GetItemConstants retrieves the cached item metadata.
func (fc *freshnessCache) GetItemConstants(ctx context.Context, maxAge time.Duration) (map[string]opendota.ItemConstants, bool) {
	return getEntry[map[string]opendota.ItemConstants](fc, ctx, itemConstantsKey, maxAge)
}

// SaveItemConstants replaces the cached item metadata.
func (fc *freshnessCache) SaveItemConstants(ctx context.Context, items map[string]opendota.ItemConstants) {
	fc.saveEntry(ctx, itemConstantsKey, items)
}

// getEntry reads and unmarshals one entry, applying the freshness predicate.
func getEntry[T any](fc *freshnessCache, ctx context.Context, key string, maxAge time.Duration) (T, bool) {
	var zero T

	raw, ok := fc.getRaw(ctx, key)
	if !ok {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		fc.log.Warnf("Failed to parse cache entry %s: %v", key, err)
		return zero, false
	}

	// Stale reads are misses, but the entry stays: a later read with a larger
	// age ceiling may still succeed.
	if !Fresh(fc.now(), env.UpdatedAt, maxAge) {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(env.Payload, &value); err != nil {
		fc.log.Warnf("Failed to parse cache payload %s: %v", key, err)
		return zero, false
	}
	return value, true
}

// getRaw reads the envelope from redis, falling back to the database copy.
func (fc *freshnessCache) getRaw(ctx context.Context, key string) (string, bool) {
	raw, err := fc.redis.Get(ctx, key)
	if err == nil {
		return raw, true
	}

	if fc.repo == nil {
		return "", false
	}

	raw, err = fc.repo.GetKey(ctx, key)
	if err != nil {
		return "", false
	}
	return raw, true
}

// saveEntry marshals and writes one entry through both stores.
// Last writer wins, no version check.
func (fc *freshnessCache) saveEntry(ctx context.Context, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fc.log.Warnf("Failed to marshal cache payload %s: %v", key, err)
		return
	}

	raw, err := json.Marshal(envelope{UpdatedAt: fc.now(), Payload: body})
	if err != nil {
		fc.log.Warnf("Failed to marshal cache entry %s: %v", key, err)
		return
	}

	if err := fc.redis.Set(ctx, key, string(raw), 0); err != nil {
		fc.log.Warnf("Failed to save cache entry %s to redis: %v", key, err)
	}

	if fc.repo != nil {
		if err := fc.repo.SetKey(ctx, key, string(raw)); err != nil {
			fc.log.Warnf("Failed to save cache entry %s to database: %v", key, err)
		}
	}
}
