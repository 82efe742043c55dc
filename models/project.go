package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the central listing entity. Slug is unique within the owning
// user's projects and is computed at write time, never backfilled on read.
// Views is a materialized count; project_views rows are the source of truth
// and the two are only ever written together (see database.ProjectViewRepo).
type Project struct {
	ID          uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string       `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string       `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_project_user_slug"`
	Description string       `json:"description" db:"description" gorm:"type:text;not null"`
	LogoURL     string       `json:"logo_url,omitempty" db:"logo_url" gorm:"type:text"`
	WebsiteURL  string       `json:"website_url,omitempty" db:"website_url" gorm:"type:text"`
	GithubURL   string       `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	CategoryID  uuid.UUID    `json:"category_id" db:"category_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID    `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_user_slug"`
	IsFeatured  bool         `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	Views       int64        `json:"views" db:"views" gorm:"not null;default:0"`
	IsActive    bool         `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
	Tags        []ProjectTag `json:"tags,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Owner       *User        `json:"owner,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
