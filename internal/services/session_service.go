package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

const (
	SessionTTL = 24 * time.Hour

	// 32 bytes = 256 bits of entropy per token.
	sessionTokenBytes = 32
	maxTokenAttempts  = 3
)

// ClientInfo is the request metadata a session is bound to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

func (c ClientInfo) Fingerprint() string {
	return utils.Fingerprint(c.UserAgent, c.IPAddress)
}

type SessionServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, fingerprint string, client ClientInfo) (string, error)
	Lookup(ctx context.Context, token, fingerprint string) (*db_models.Session, error)
	Destroy(ctx context.Context, token string) error
	DestroyOtherSessions(ctx context.Context, userID uuid.UUID, keepToken string) (int64, error)
	Reap(ctx context.Context) (int64, error)
}

type SessionService struct {
	sessionRepo repositories.SessionRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewSessionService(sessionRepo repositories.SessionRepository, log *zap.Logger) SessionServiceInterface {
	return newSessionService(sessionRepo, log, time.Now)
}

func newSessionService(sessionRepo repositories.SessionRepository, log *zap.Logger, now func() time.Time) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		log:         log.Named("sessions"),
		now:         now,
	}
}

// Create issues a fresh token for userID. Only the token's hash is stored.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, fingerprint string, client ClientInfo) (string, error) {
	now := s.now().UTC()

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := utils.GenerateSecureToken(sessionTokenBytes)
		if err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}

		session := &db_models.Session{
			BaseModel:   db_models.BaseModel{CreatedAt: now},
			TokenHash:   utils.HashToken(token),
			UserID:      userID,
			Fingerprint: fingerprint,
			UserAgent:   optional(client.UserAgent),
			IPAddress:   optional(client.IPAddress),
			ExpiresAt:   now.Add(SessionTTL),
		}

		err = s.sessionRepo.Create(ctx, session)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		s.log.Warn("session token collision, regenerating")
	}

	return "", fmt.Errorf("%w: could not allocate a unique session token", utils.ErrDatabaseError)
}

// Lookup returns the live session for token, or nil when there is none.
// An expired record is removed on sight. A fingerprint mismatch yields nil but
// leaves the record alone so the legitimate client keeps its session.
func (s *SessionService) Lookup(ctx context.Context, token, fingerprint string) (*db_models.Session, error) {
	if token == "" {
		return nil, nil
	}

	hash := utils.HashToken(token)
	session, err := s.sessionRepo.FindByTokenHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if session == nil {
		return nil, nil
	}

	if session.ExpiredAt(s.now()) {
		if err := s.sessionRepo.DeleteByTokenHash(ctx, hash); err != nil {
			s.log.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, nil
	}

	if subtle.ConstantTimeCompare([]byte(session.Fingerprint), []byte(fingerprint)) != 1 {
		s.log.Debug("session fingerprint mismatch", zap.String("user_id", session.UserID.String()))
		return nil, nil
	}

	return session, nil
}

// Destroy succeeds whether or not the token exists.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByTokenHash(ctx, utils.HashToken(token)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *SessionService) DestroyOtherSessions(ctx context.Context, userID uuid.UUID, keepToken string) (int64, error) {
	n, err := s.sessionRepo.DeleteByUserExcept(ctx, userID, utils.HashToken(keepToken))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return n, nil
}

// Reap deletes every session whose expiry has passed.
func (s *SessionService) Reap(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return n, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
