// Package store persists browser-local style state in a key-value table: one
// key, one serialized payload, rewritten wholesale on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const favoritesKey = "favorites"

// Entry is a single key-value row.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// FavoritesStore persists the ordered sequence of favorite recipe names.
type FavoritesStore struct {
	db *gorm.DB
}

// NewFavoritesStore creates the store and ensures its table exists.
func NewFavoritesStore(db *gorm.DB) (*FavoritesStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &FavoritesStore{db: db}, nil
}

// Load reads the favorites sequence. Missing or corrupt data degrades
// silently to an empty set.
func (s *FavoritesStore) Load(ctx context.Context) []string {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", favoritesKey).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[FavoritesStore] Failed to load favorites, starting empty: %v", err)
		}
		return []string{}
	}

	var names []string
	if err := json.Unmarshal([]byte(entry.Value), &names); err != nil {
		log.Printf("[FavoritesStore] Corrupt favorites payload, starting empty: %v", err)
		return []string{}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// Save rewrites the whole favorites sequence.
func (s *FavoritesStore) Save(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}

	value, err := json.Marshal(names)
	if err != nil {
		return err
	}

	entry := Entry{Key: favoritesKey, Value: string(value)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}
