package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectView is an append-only event recording one project-detail view.
// These rows are the authoritative view counter.
type ProjectView struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid"`
	IPAddress string     `json:"ip_address,omitempty" db:"ip_address" gorm:"type:text"`
	UserAgent string     `json:"user_agent,omitempty" db:"user_agent" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}
