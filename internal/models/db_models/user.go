package db_models

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is stored with a lower-cased email so the unique index is
// case-insensitive.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null;default:''"`
	Role         Role   `gorm:"not null;default:'user'"`
}
