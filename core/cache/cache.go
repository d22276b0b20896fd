package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTTL is applied when a caller passes a non-positive ttl.
const DefaultTTL = 60 * time.Minute

// Entry is a row in the cache table. Expiry is purely time based: rows are
// overwritten on write and never explicitly deleted.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;type:jsonb"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

// TableName maps the entry to the shared cache table.
func (Entry) TableName() string { return "cache" }

// Store is a string-keyed, TTL-expiring value store over the database.
// An expired entry and a missing entry are indistinguishable to callers.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a cache store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns the stored value for key, reporting whether a live entry exists.
// A miss (absent or expired) is (nil, false, nil), not an error.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, s.now()).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return json.RawMessage(entry.Value), true, nil
}

// Put upserts the value under key with expires_at = now + ttl, overwriting
// any prior entry. Last write wins; there is no size bound and no eviction
// beyond expiry.
func (s *Store) Put(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	entry := Entry{
		Key:       key,
		Value:     string(value),
		ExpiresAt: s.now().Add(ttl),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}
	return nil
}
