// Package store is the local SQLite cache: the persisted login
// session and a log of viewed lessons.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SessionRecord is the single persisted login session.
type SessionRecord struct {
	ID          uint `gorm:"primaryKey"`
	AccessToken string
	UserID      int
	Name        string
	Email       string
	IsSensei    bool
	UpdatedAt   time.Time
}

// ViewRecord logs one lesson view, completed or not. It feeds the
// stats screen's recently-viewed list and survives across runs.
type ViewRecord struct {
	ID        uint `gorm:"primaryKey"`
	CourseID  int  `gorm:"index"`
	LessonID  string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// Store wraps the gorm connection.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at dsn and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&SessionRecord{}, &ViewRecord{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveSession upserts the single login session row.
func (s *Store) SaveSession(rec *SessionRecord) error {
	rec.ID = 1
	return s.db.Save(rec).Error
}

// LoadSession returns the persisted session, or nil if none exists.
func (s *Store) LoadSession() (*SessionRecord, error) {
	var rec SessionRecord
	err := s.db.First(&rec, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClearSession deletes the persisted session.
func (s *Store) ClearSession() error {
	return s.db.Delete(&SessionRecord{}, 1).Error
}

// AppendView logs a lesson view.
func (s *Store) AppendView(rec *ViewRecord) error {
	return s.db.Create(rec).Error
}

// MarkViewCompleted flags the stored views of a lesson completed.
func (s *Store) MarkViewCompleted(lessonID string) error {
	return s.db.Model(&ViewRecord{}).
		Where("lesson_id = ?", lessonID).
		Update("completed", true).Error
}

// RecentViews returns the newest view records, newest first.
func (s *Store) RecentViews(limit int) ([]ViewRecord, error) {
	var recs []ViewRecord
	err := s.db.Order("created_at DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/bytetech/bytetech.db
// 2. ~/.local/share/bytetech/bytetech.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "bytetech", "bytetech.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
