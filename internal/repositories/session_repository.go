package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ltctrack/internal/models/db_models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *db_models.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*db_models.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByUserExcept(ctx context.Context, userID uuid.UUID, keepTokenHash string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (s *sessionRepository) Create(ctx context.Context, session *db_models.Session) error {
	return translateWriteError(s.db.WithContext(ctx).Create(session).Error)
}

func (s *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*db_models.Session, error) {
	var session db_models.Session
	err := s.db.WithContext(ctx).First(&session, "token_hash = ?", tokenHash).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// DeleteByTokenHash is a no-op when nothing matches.
func (s *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return s.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&db_models.Session{}).Error
}

func (s *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&db_models.Session{})
	return res.RowsAffected, res.Error
}

func (s *sessionRepository) DeleteByUserExcept(ctx context.Context, userID uuid.UUID, keepTokenHash string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND token_hash <> ?", userID, keepTokenHash).
		Delete(&db_models.Session{})
	return res.RowsAffected, res.Error
}
