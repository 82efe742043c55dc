package database

import (
	"errors"
	"strings"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPageLimit caps catalog pages when the caller does not ask for one.
const DefaultPageLimit = 50

// ProjectFilter carries the catalog filters. The same filter is applied to
// the page query and the count query so `total` always matches the rows the
// page was cut from.
type ProjectFilter struct {
	CategoryID   *uuid.UUID
	UserID       *uuid.UUID
	Search       string
	FeaturedOnly bool
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// scope applies the filter predicates to a query over active projects
func (f ProjectFilter) scope(db *gorm.DB) *gorm.DB {
	q := db.Where("is_active = ?", true)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if f.Search != "" {
		// Case-insensitive substring match over title or description.
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	return q
}

// FindPage returns one catalog page: featured projects first, then newest
// first, with tags, category and owner preloaded.
func (r *ProjectRepo) FindPage(filter ProjectFilter, limit, offset int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	var projects []*models.Project
	err := filter.scope(r.db.Model(&models.Project{})).
		Preload("Tags").
		Preload("Category").
		Preload("Owner").
		Order("is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	return projects, err
}

// CountByFilter returns the total number of projects matching the filter,
// ignoring pagination.
func (r *ProjectRepo) CountByFilter(filter ProjectFilter) (int64, error) {
	var count int64
	err := filter.scope(r.db.Model(&models.Project{})).Count(&count).Error
	return count, err
}

// FindByUserAndSlug resolves a project within one user's slug scope, or nil
// if absent.
func (r *ProjectRepo) FindByUserAndSlug(userID uuid.UUID, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Tags").
		Preload("Category").
		Preload("Owner").
		First(&project, "user_id = ? AND slug = ? AND is_active = ?", userID, slug, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether the owning user already has a project with slug
func (r *ProjectRepo) SlugExists(userID uuid.UUID, slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("user_id = ? AND slug = ?", userID, slug).
		Count(&count).Error
	return count > 0, err
}

// FindByUser returns a user's projects with tags, newest first
func (r *ProjectRepo) FindByUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Preload("Tags").
		Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Tags").First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// AddWithTags inserts a project and its tag rows in one transaction so a
// failed tag insert never leaves a half-written listing behind.
func (r *ProjectRepo) AddWithTags(project *models.Project, tagValues []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for _, value := range tagValues {
			tag := models.ProjectTag{
				ID:        uuid.New(),
				ProjectID: project.ID,
				Value:     value,
			}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Count returns the number of active projects
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
