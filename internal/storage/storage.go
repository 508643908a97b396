package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the single seam through which all persisted state flows.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	Reset() error
	Close() error
}

// Entry is one persisted key/value pair.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Key   string `gorm:"uniqueIndex"`
	Value string `gorm:"type:text"`
}

// Manager persists entries in a sqlite database.
type Manager struct {
	db *gorm.DB
}

func NewManager(dbFilePath string) (*Manager, error) {
	if dir := filepath.Dir(dbFilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	// Silent logger so "record not found" lookups don't spam output
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close closes the database connection. This should be called when the
// Manager is no longer needed, especially in tests to allow cleanup of
// temporary database files on Windows.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (m *Manager) Get(key string) (string, bool) {
	var entry Entry
	result := m.db.Where("key = ?", key).First(&entry)
	if result.Error != nil {
		return "", false
	}
	return entry.Value, true
}

func (m *Manager) Set(key string, value string) error {
	var entry Entry
	result := m.db.Where("key = ?", key).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		entry = Entry{Key: key, Value: value}
		return m.db.Create(&entry).Error
	}
	if result.Error != nil {
		return result.Error
	}

	entry.Value = value
	return m.db.Save(&entry).Error
}

func (m *Manager) Delete(key string) error {
	return m.db.Where("key = ?", key).Delete(&Entry{}).Error
}

func (m *Manager) Keys() ([]string, error) {
	var keys []string
	result := m.db.Model(&Entry{}).Order("key asc").Pluck("key", &keys)
	if result.Error != nil {
		return nil, result.Error
	}
	return keys, nil
}

func (m *Manager) Reset() error {
	return m.db.Exec("DELETE FROM entries").Error
}
