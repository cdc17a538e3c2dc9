package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key-value pair in PostgreSQL.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable for the admin CLI.
func (Entry) TableName() string { return "kv_entries" }

// GormStore keeps the key-value state in PostgreSQL. Used when the utility
// should survive a Redis flush, selected via STORE_BACKEND=postgres.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore runs the schema migration and wraps the connection.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.DB.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

func (s *GormStore) Remove(key string) error {
	return s.DB.Delete(&Entry{}, "key = ?", key).Error
}
