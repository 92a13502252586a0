package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_name"`
	Name       string    `gorm:"not null;uniqueIndex:idx_accounts_user_name"`
	LtcAddress string    `gorm:"not null;uniqueIndex"`
	VerifiedAt *time.Time
}

func (a *Account) IsVerified() bool {
	return a.VerifiedAt != nil
}
