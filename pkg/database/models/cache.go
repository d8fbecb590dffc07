package models

import "time"

// Database model for the cached provider payloads.
// Used as fallback in case the Redis is down, and as the durable copy of the
// freshness cache: one row per (kind, natural key), whole-payload replace.
type CacheEntry struct {
	CacheKey   string `gorm:"primaryKey;autoIncrement:false"`
	CacheValue string `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}
