package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleSubmitter = "submitter"
	RoleTester    = "tester"
	RoleCreator   = "creator"
	RoleAdmin     = "admin"
)

// User represents a registered account, created on first external sign-in
type User struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	AuthID        string    `json:"-" db:"auth_id" gorm:"type:text;not null;uniqueIndex"`
	Email         string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Username      string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	DisplayName   string    `json:"display_name" db:"display_name" gorm:"type:text;not null"`
	AvatarURL     string    `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	Bio           string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	Role          string    `json:"role" db:"role" gorm:"type:text;not null;default:submitter"`
	WalletAddress *string   `json:"wallet_address,omitempty" db:"wallet_address" gorm:"type:text"`
	IsVerified    bool      `json:"is_verified" db:"is_verified" gorm:"not null;default:false"`
	IsActive      bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}
