package database

import (
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// FindByProject returns the tag rows for one project
func (r *ProjectTagRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectTag, error) {
	var tags []*models.ProjectTag
	err := r.db.Find(&tags, "project_id = ?", projectID).Error
	return tags, err
}

// CountByProjects returns the total number of tag rows across projects
func (r *ProjectTagRepo) CountByProjects(projectIDs []uuid.UUID) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.ProjectTag{}).
		Where("project_id IN ?", projectIDs).
		Count(&count).Error
	return count, err
}

// Add inserts a new project tag into the database
func (r *ProjectTagRepo) Add(projectTag *models.ProjectTag) error {
	return r.db.Create(projectTag).Error
}

// Delete removes a project tag from the database by id
func (r *ProjectTagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectTag{}, "id = ?", id).Error
}
