package database

import (
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectViewRepo struct {
	db *gorm.DB
}

func NewProjectViewRepo(db *gorm.DB) *ProjectViewRepo {
	return &ProjectViewRepo{db}
}

// Record appends a view event and bumps the materialized counter on the
// project row in the same transaction. The increment runs store-side
// (views = views + 1), so concurrent views never lose updates, and this is
// the only code path that writes either counter.
func (r *ProjectViewRepo) Record(view *models.ProjectView) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", view.ProjectID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
}

// CountsByProjects returns the view-event count per project in one grouped
// query.
func (r *ProjectViewRepo) CountsByProjects(projectIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ProjectID uuid.UUID
		Total     int64
	}
	var rows []row
	err := r.db.Model(&models.ProjectView{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.ProjectID] = r.Total
	}
	return counts, nil
}

// Count returns the total number of view events across the directory
func (r *ProjectViewRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectView{}).Count(&count).Error
	return count, err
}
