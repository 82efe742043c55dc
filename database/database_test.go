package database

import (
	"testing"
	"time"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema migrated
func newTestDB(t *testing.T) (*gorm.DB, Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Project{},
		&models.ProjectTag{},
		&models.ProjectView{},
		&models.Review{},
	))

	return db, New(db)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		AuthID:      "auth-" + username,
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: username,
		Role:        models.RoleSubmitter,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     slug,
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func projectForUser(userID, categoryID uuid.UUID, title, slug string) *models.Project {
	return &models.Project{
		ID:         uuid.New(),
		Title:      title,
		Slug:       slug,
		CategoryID: categoryID,
		UserID:     userID,
		IsActive:   true,
	}
}

type seedProjectOpts struct {
	title       string
	slug        string
	description string
	featured    bool
	views       int64
	createdAt   time.Time
}

func seedProject(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, opts seedProjectOpts) *models.Project {
	t.Helper()
	if opts.slug == "" {
		opts.slug = opts.title
	}
	project := &models.Project{
		ID:          uuid.New(),
		Title:       opts.title,
		Slug:        opts.slug,
		Description: opts.description,
		CategoryID:  category.ID,
		UserID:      owner.ID,
		IsFeatured:  opts.featured,
		Views:       opts.views,
		IsActive:    true,
		CreatedAt:   opts.createdAt,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
