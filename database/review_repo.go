package database

import (
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db}
}

// FindByProject returns a project's reviews with reviewer info, newest first
func (r *ReviewRepo) FindByProject(projectID uuid.UUID) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.
		Preload("Reviewer").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the mean rating for a project, 0 when unreviewed
func (r *ReviewRepo) AverageRating(projectID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating)").
		Where("project_id = ?", projectID).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// Add inserts a new review into the database
func (r *ReviewRepo) Add(review *models.Review) error {
	return r.db.Create(review).Error
}
