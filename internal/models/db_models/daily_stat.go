package db_models

import (
	"time"

	"github.com/google/uuid"
)

// DailyStat holds one account's figures for one UTC calendar day.
// (account_id, date) is unique.
type DailyStat struct {
	BaseModel
	AccountID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stats_account_date,priority:1"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_daily_stats_user_date,priority:1"`
	Date      time.Time  `gorm:"not null;uniqueIndex:idx_daily_stats_account_date,priority:2;index:idx_daily_stats_user_date,priority:2"`
	Earned    float64    `gorm:"not null;default:0"`
	Pending   float64    `gorm:"not null;default:0"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}
