package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a taxonomy node projects are filed under. Administered out of
// band; read-mostly from the API's perspective.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Icon        string    `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	Color       string    `json:"color,omitempty" db:"color" gorm:"type:text"`
	Gradient    string    `json:"gradient,omitempty" db:"gradient" gorm:"type:text"`
	SortOrder   int       `json:"sort_order" db:"sort_order" gorm:"not null;default:0"`
	IsActive    bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}
