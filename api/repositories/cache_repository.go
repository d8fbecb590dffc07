package repositories

import (
	"context"
	"errors"

	"github.com/surfyhou/Dota2Analyzer/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrKeyNotFound is returned when the backup table has no row for the key.
var ErrKeyNotFound = errors.New("cache key not found")

// CacheRepository is the public interface for the durable cache copy.
type CacheRepository interface {
	GetKey(ctx context.Context, key string) (string, error)
	SetKey(ctx context.Context, key string, value string) error
}

// Cache repository structure.
type cacheRepository struct {
	db *gorm.DB
}

// NewCacheRepository creates a cache repository.
func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

// GetKey returns the stored value for the given key.
// Should be used as a Redis fallback.
func (cr *cacheRepository) GetKey(ctx context.Context, key string) (string, error) {
	var entry models.CacheEntry
	err := cr.db.WithContext(ctx).Where("cache_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return entry.CacheValue, nil
}

// SetKey upserts the given key value.
func (cr *cacheRepository) SetKey(ctx context.Context, key string, value string) error {
	entry := &models.CacheEntry{
		CacheKey:   key,
		CacheValue: value,
	}

	// Upsert the cache key.
	return cr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_value", "updated_at"}),
	}).Create(entry).Error
}
