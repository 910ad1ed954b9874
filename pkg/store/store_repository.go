package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wastenot/entities"
)

// Fixed keys of the persisted state. They are the storage format.
const (
	KeyItems        = "items"
	KeyRecipes      = "recipes"
	KeyAnalytics    = "analytics"
	KeyPreferences  = "preferences"
	KeyUser         = "user"
	KeyRecipeAPIKey = "recipe_api_key"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyItems, KeyRecipes, KeyAnalytics, KeyPreferences, KeyUser, KeyRecipeAPIKey}

type (
	// StoreRepository reads and writes raw JSON documents by key. There are no
	// transactions across keys; the last write wins.
	StoreRepository interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Put(ctx context.Context, key string, value []byte) error
		Delete(ctx context.Context, keys ...string) error
		Keys(ctx context.Context) ([]string, error)
	}

	storeRepository struct {
		db *gorm.DB
	}
)

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry entities.StoreEntry
	if err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

func (r *storeRepository) Put(ctx context.Context, key string, value []byte) error {
	entry := entities.StoreEntry{Key: key, Value: string(value)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("entry_key IN ?", keys).Delete(&entities.StoreEntry{}).Error; err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

func (r *storeRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).Model(&entities.StoreEntry{}).Pluck("entry_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
