package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"ltctrack/internal/models/db_models"
)

type DailyStatRepository interface {
	Create(ctx context.Context, stat *db_models.DailyStat) error
	Upsert(ctx context.Context, stat *db_models.DailyStat, now time.Time) (*db_models.DailyStat, error)
	FindById(ctx context.Context, id uuid.UUID) (*db_models.DailyStat, error)
	FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date time.Time, excludeID *uuid.UUID) (*db_models.DailyStat, error)
	Update(ctx context.Context, stat *db_models.DailyStat) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithAccount(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]DailyStatWithAccount, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]db_models.DailyStat, error)
}

// DailyStatWithAccount is a listing row joined with its account's labels.
type DailyStatWithAccount struct {
	db_models.DailyStat
	AccountName string `gorm:"column:account_name"`
	LtcAddress  string `gorm:"column:ltc_address"`
}

type dailyStatRepository struct {
	db *gorm.DB
}

func NewDailyStatRepository(db *gorm.DB) DailyStatRepository {
	return &dailyStatRepository{db: db}
}

func (r *dailyStatRepository) Create(ctx context.Context, stat *db_models.DailyStat) error {
	return translateWriteError(r.db.WithContext(ctx).Create(stat).Error)
}

// Upsert inserts the row or, when (account_id, date) already exists,
// overwrites earned/pending and stamps updated_at in the same statement.
// created_at of an existing row is left alone. The stored row is returned.
func (r *dailyStatRepository) Upsert(ctx context.Context, stat *db_models.DailyStat, now time.Time) (*db_models.DailyStat, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"earned":     stat.Earned,
				"pending":    stat.Pending,
				"updated_at": now,
			}),
		}).
		Create(stat).Error
	if err != nil {
		return nil, translateWriteError(err)
	}

	stored, err := r.FindByAccountAndDate(ctx, stat.AccountID, stat.Date, nil)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("upserted daily stat not found")
	}
	return stored, nil
}

func (r *dailyStatRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.DailyStat, error) {
	var stat db_models.DailyStat
	err := r.db.WithContext(ctx).First(&stat, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &stat, nil
}

func (r *dailyStatRepository) FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date time.Time, excludeID *uuid.UUID) (*db_models.DailyStat, error) {
	q := r.db.WithContext(ctx).
		Where("account_id = ? AND date = ?", accountID, date)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var stat db_models.DailyStat
	err := q.First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &stat, nil
}

func (r *dailyStatRepository) Update(ctx context.Context, stat *db_models.DailyStat) error {
	err := r.db.WithContext(ctx).
		Model(stat).
		Select("account_id", "user_id", "date", "earned", "pending", "updated_at").
		Updates(stat).Error
	return translateWriteError(err)
}

func (r *dailyStatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&db_models.DailyStat{}).Error
}

func (r *dailyStatRepository) ListWithAccount(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]DailyStatWithAccount, error) {
	q := r.db.WithContext(ctx).
		Table("daily_stats").
		Select("daily_stats.*, accounts.name AS account_name, accounts.ltc_address AS ltc_address").
		Joins("JOIN accounts ON accounts.id = daily_stats.account_id").
		Where("daily_stats.user_id = ?", userID)
	if accountID != nil {
		q = q.Where("daily_stats.account_id = ?", *accountID)
	}

	var rows []DailyStatWithAccount
	err := q.Order("daily_stats.date DESC").Scan(&rows).Error
	return rows, err
}

// ListByUserInRange returns the user's stats with start <= date <= end; nil
// bounds are open.
func (r *dailyStatRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]db_models.DailyStat, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	var stats []db_models.DailyStat
	err := q.Order("date ASC").Find(&stats).Error
	return stats, err
}
