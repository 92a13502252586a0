package infra

import (
	"context"

	"gorm.io/gorm"
	"ltctrack/internal/models/db_models"
)

// Models lists every table the service owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&db_models.User{},
		&db_models.Session{},
		&db_models.Account{},
		&db_models.DailyStat{},
		&db_models.AccountVerificationEvent{},
	}
}

// Migrate creates missing tables and indexes, including the unique
// (account_id, date) index the daily-stat upsert conflicts on.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
