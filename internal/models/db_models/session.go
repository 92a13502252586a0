package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Session rows are never updated. TokenHash is the SHA-256 of the cookie value.
type Session struct {
	BaseModel
	TokenHash   string    `gorm:"uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Fingerprint string    `gorm:"not null"`
	UserAgent   *string
	IPAddress   *string
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// ExpiredAt reports whether the session is no longer valid at now.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
