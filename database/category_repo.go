package database

import (
	"errors"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAllActive returns all active categories ordered by sort order
func (r *CategoryRepo) FindAllActive() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&categories).Error
	return categories, err
}

// FindBySlug returns a category by its slug, or nil if absent
func (r *CategoryRepo) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// ProjectsCount returns the number of active projects filed under a category
func (r *CategoryRepo) ProjectsCount(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}

// Count returns the number of active categories
func (r *CategoryRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
