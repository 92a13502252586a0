package db_models

import "github.com/google/uuid"

type VerificationAction string

const (
	ActionVerify   VerificationAction = "verify"
	ActionUnverify VerificationAction = "unverify"
)

// AccountVerificationEvent records who flipped an account's verified state.
type AccountVerificationEvent struct {
	BaseModel
	AccountID uuid.UUID          `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null"`
	Action    VerificationAction `gorm:"not null"`
}
