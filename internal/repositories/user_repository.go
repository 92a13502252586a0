package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ltctrack/internal/models/db_models"
)

type UserRepository interface {
	Create(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *userRepository) Create(ctx context.Context, user *db_models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return translateWriteError(u.db.WithContext(ctx).Create(user).Error)
}

func (u *userRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) error {
	err := u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":  name,
			"email": NormalizeEmail(email),
		}).Error
	return translateWriteError(err)
}

func (u *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
