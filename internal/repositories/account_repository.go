package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ltctrack/internal/models/db_models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	ListByUserId(ctx context.Context, userID uuid.UUID) ([]db_models.Account, error)
	NameTaken(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	AddressTaken(ctx context.Context, address string, excludeID *uuid.UUID) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, name, address string) error
	MarkVerified(ctx context.Context, id, actorID uuid.UUID, at time.Time) (bool, error)
	MarkUnverified(ctx context.Context, id, actorID uuid.UUID) (bool, error)
	DeleteWithStats(ctx context.Context, id uuid.UUID) error
	ListVerificationEvents(ctx context.Context, accountID uuid.UUID) ([]db_models.AccountVerificationEvent, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Create(ctx context.Context, account *db_models.Account) error {
	return translateWriteError(a.db.WithContext(ctx).Create(account).Error)
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) ListByUserId(ctx context.Context, userID uuid.UUID) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accounts).Error
	return accounts, err
}

func (a *accountRepository) NameTaken(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (a *accountRepository) AddressTaken(ctx context.Context, address string, excludeID *uuid.UUID) (bool, error) {
	q := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("ltc_address = ?", address)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (a *accountRepository) UpdateFields(ctx context.Context, id uuid.UUID, name, address string) error {
	err := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        name,
			"ltc_address": address,
		}).Error
	return translateWriteError(err)
}

// MarkVerified flips an unverified account in one conditional UPDATE and
// records the event in the same transaction. It reports false when the
// account was already verified (or is gone).
func (a *accountRepository) MarkVerified(ctx context.Context, id, actorID uuid.UUID, at time.Time) (bool, error) {
	return a.flipVerification(ctx, id, actorID, db_models.ActionVerify, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&db_models.Account{}).
			Where("id = ? AND verified_at IS NULL", id).
			Update("verified_at", at)
	})
}

func (a *accountRepository) MarkUnverified(ctx context.Context, id, actorID uuid.UUID) (bool, error) {
	return a.flipVerification(ctx, id, actorID, db_models.ActionUnverify, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&db_models.Account{}).
			Where("id = ? AND verified_at IS NOT NULL", id).
			Update("verified_at", nil)
	})
}

func (a *accountRepository) flipVerification(
	ctx context.Context,
	id, actorID uuid.UUID,
	action db_models.VerificationAction,
	update func(tx *gorm.DB) *gorm.DB,
) (bool, error) {
	flipped := false
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := update(tx)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		flipped = true
		return tx.Create(&db_models.AccountVerificationEvent{
			AccountID: id,
			UserID:    actorID,
			Action:    action,
		}).Error
	})
	return flipped, err
}

// DeleteWithStats removes the account together with every daily stat and
// verification event that belongs to it.
func (a *accountRepository) DeleteWithStats(ctx context.Context, id uuid.UUID) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&db_models.DailyStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&db_models.AccountVerificationEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&db_models.Account{}).Error
	})
}

func (a *accountRepository) ListVerificationEvents(ctx context.Context, accountID uuid.UUID) ([]db_models.AccountVerificationEvent, error) {
	var events []db_models.AccountVerificationEvent
	err := a.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
