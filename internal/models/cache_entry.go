package models

import (
	"time"
)

// CacheEntry represents a cached value persisted in the local database.
// The snapshot cache and the rate limiter both store their state here.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:256"`
	Value     []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
