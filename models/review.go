package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a 1-5 rating with free text, one per user per project
type Review struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_project_user"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_project_user"`
	Rating    int       `json:"rating" db:"rating" gorm:"not null"`
	Comment   string    `json:"comment,omitempty" db:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
