package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

const minPasswordLength = 6

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest, client ClientInfo) (string, *Identity, error)
	Logout(ctx context.Context, token string) error
	ResolveIdentity(ctx context.Context, token string, client ClientInfo) (*Identity, error)
	UpdateInfo(ctx context.Context, identity *Identity, request request_models.UpdateInfoRequest) (*response_models.UserResponse, error)
	ChangePassword(ctx context.Context, identity *Identity, currentToken string, request request_models.ChangePasswordRequest) error
}

type AuthService struct {
	userRepo repositories.UserRepository
	sessions SessionServiceInterface
	hasher   PasswordHasher
	log      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessions SessionServiceInterface,
	hasher PasswordHasher,
	log *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		log:      log.Named("auth"),
	}
}

func (a *AuthService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserResponse, error) {
	if len(request.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", utils.ErrInvalidInput, minPasswordLength)
	}

	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	digest, err := a.hasher.Hash(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Email:        request.Email,
		PasswordHash: digest,
		Name:         strings.TrimSpace(request.DisplayName),
		Role:         db_models.RoleUser,
	}
	if err := a.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return identityFromUser(user).Response(), nil
}

// Login checks the credentials and opens a session bound to the client.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest, client ClientInfo) (string, *Identity, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil || !a.hasher.Verify(request.Password, user.PasswordHash) {
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, user.ID, client.Fingerprint(), client)
	if err != nil {
		return "", nil, err
	}

	return token, identityFromUser(user), nil
}

func (a *AuthService) Logout(ctx context.Context, token string) error {
	return a.sessions.Destroy(ctx, token)
}

// ResolveIdentity maps a cookie token to the signed-in user, or nil.
func (a *AuthService) ResolveIdentity(ctx context.Context, token string, client ClientInfo) (*Identity, error) {
	session, err := a.sessions.Lookup(ctx, token, client.Fingerprint())
	if err != nil || session == nil {
		return nil, err
	}

	user, err := a.userRepo.FindById(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, nil
	}
	return identityFromUser(user), nil
}

func (a *AuthService) UpdateInfo(ctx context.Context, identity *Identity, request request_models.UpdateInfoRequest) (*response_models.UserResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	name := strings.TrimSpace(request.Name)
	email := repositories.NormalizeEmail(request.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", utils.ErrInvalidInput)
	}

	if email != identity.Email {
		other, err := a.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if other != nil && other.ID != identity.ID {
			return nil, utils.ErrEmailAlreadyExists
		}
	}

	if err := a.userRepo.UpdateProfile(ctx, identity.ID, name, email); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	user, err := a.userRepo.FindById(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return identityFromUser(user).Response(), nil
}

// ChangePassword replaces the credential and signs out every other session of
// the user; the session making the request survives.
func (a *AuthService) ChangePassword(ctx context.Context, identity *Identity, currentToken string, request request_models.ChangePasswordRequest) error {
	if identity == nil {
		return utils.ErrUnauthenticated
	}
	if request.NewPassword != request.ConfirmPassword {
		return fmt.Errorf("%w: new passwords do not match", utils.ErrInvalidInput)
	}
	if len(request.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", utils.ErrInvalidInput, minPasswordLength)
	}

	user, err := a.userRepo.FindById(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if !a.hasher.Verify(request.CurrentPassword, user.PasswordHash) {
		return utils.ErrPasswordMismatch
	}

	digest, err := a.hasher.Hash(request.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.userRepo.UpdatePasswordHash(ctx, user.ID, digest); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	n, err := a.sessions.DestroyOtherSessions(ctx, user.ID, currentToken)
	if err != nil {
		return err
	}
	a.log.Info("password changed", zap.String("user_id", user.ID.String()), zap.Int64("sessions_revoked", n))
	return nil
}
