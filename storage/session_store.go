package storage

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sessionKey is the single row the store keeps, the client-side equivalent
// of the browser's "authToken" localStorage entry.
const sessionKey = "authToken"

type SessionRecord struct {
	Key       string `gorm:"primaryKey"`
	Token     string
	UpdatedAt time.Time
}

// SessionStore persists the bearer token across restarts in a local sqlite
// database. It is written only by login and logout and read at startup.
type SessionStore struct {
	db *gorm.DB
}

// Open creates or opens the store at path. Use "file::memory:?cache=shared"
// in tests.
func Open(path string) (*SessionStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open session store %s", path)
	}
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate session store")
	}
	return &SessionStore{db: db}, nil
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *SessionStore) Token() (string, error) {
	var record SessionRecord
	err := s.db.First(&record, "key = ?", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "read session token")
	}
	return record.Token, nil
}

func (s *SessionStore) SaveToken(token string) error {
	record := SessionRecord{Key: sessionKey, Token: token, UpdatedAt: time.Now()}
	err := s.db.Save(&record).Error
	return errors.Wrap(err, "save session token")
}

func (s *SessionStore) Clear() error {
	err := s.db.Delete(&SessionRecord{}, "key = ?", sessionKey).Error
	return errors.Wrap(err, "clear session token")
}
