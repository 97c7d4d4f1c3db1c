package database

import (
	"errors"

	"storefront-catalog-api/internal/cache"
	"storefront-catalog-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheStore implements cache.Store on top of the cache_records table, so
// cache snapshots survive process restarts alongside the catalog itself.
type CacheStore struct {
	db *gorm.DB
}

// NewCacheStore wraps a gorm handle as a durable cache store.
func NewCacheStore(db *gorm.DB) *CacheStore {
	return &CacheStore{db: db}
}

// Read returns the payload saved under name, or ok=false when no record exists.
func (s *CacheStore) Read(name string) (string, bool, error) {
	var rec models.CacheRecord
	err := s.db.Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Payload, true, nil
}

// Write upserts the payload under name.
func (s *CacheStore) Write(name, payload string) error {
	rec := models.CacheRecord{Name: name, Payload: payload}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// Remove deletes the record under name. Missing records are not an error.
func (s *CacheStore) Remove(name string) error {
	return s.db.Where("name = ?", name).Delete(&models.CacheRecord{}).Error
}

// Ensure CacheStore implements cache.Store at compile time.
var _ cache.Store = (*CacheStore)(nil)
