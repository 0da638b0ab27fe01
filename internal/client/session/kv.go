package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

// KV 设备本地键值存储
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// kvEntry 键值表记录
type kvEntry struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (kvEntry) TableName() string {
	return "kv"
}

// SQLiteKV 基于sqlite文件的键值存储，进程重启后仍然保留
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLite 打开（必要时创建）键值存储文件
func OpenSQLite(path string) (*SQLiteKV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	if path == ":memory:" {
		// 内存库每个连接各自独立
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate state store: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Get 读取键值
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var e kvEntry
	err := s.db.Where("name = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set 写入键值，已存在时覆盖
func (s *SQLiteKV) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&kvEntry{Name: key, Value: value}).Error
}

// Delete 删除键值，不存在时不报错
func (s *SQLiteKV) Delete(key string) error {
	return s.db.Where("name = ?", key).Delete(&kvEntry{}).Error
}

// Close 关闭存储
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
