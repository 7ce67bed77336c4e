package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const tokenKey = "token"

// entry is one row of the local key/value table; only the "token" key is used.
type entry struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (entry) TableName() string {
	return "local_storage"
}

type SQLiteStore struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create token dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open token db: %w", err)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate token db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get() (string, error) {
	var e entry
	err := s.db.Where("name = ?", tokenKey).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *SQLiteStore) Set(token string) error {
	e := entry{Name: tokenKey, Value: token, UpdatedAt: time.Now().UTC().UnixMilli()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *SQLiteStore) Remove() error {
	return s.db.Where("name = ?", tokenKey).Delete(&entry{}).Error
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
