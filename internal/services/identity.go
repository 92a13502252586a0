package services

import (
	"github.com/google/uuid"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/pkg/utils"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        db_models.Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == db_models.RoleAdmin
}

func identityFromUser(u *db_models.User) *Identity {
	return &Identity{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.Name,
		Role:        u.Role,
	}
}

func (i *Identity) Response() *response_models.UserResponse {
	return &response_models.UserResponse{
		ID:    i.ID,
		Email: i.Email,
		Name:  i.DisplayName,
		Role:  string(i.Role),
	}
}

// PasswordHasher turns secrets into digests and checks them back.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

type bcryptHasher struct{}

func NewBcryptHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(secret string) (string, error) {
	return utils.HashPassword(secret)
}

func (bcryptHasher) Verify(secret, digest string) bool {
	return utils.ComparePasswords(digest, secret) == nil
}
