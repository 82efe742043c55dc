package api

import (
	"testing"
	"time"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() map[string]string {
	return map[string]string{
		"SESSION_SECRET":       "test-secret",
		"SESSION_TTL_HOURS":    "1",
		"SITE_URL":             "http://localhost:3000",
		"GOOGLE_CLIENT_ID":     "test-client",
		"GOOGLE_CLIENT_SECRET": "test-client-secret",
	}
}

// newTestEnv opens an in-memory database and builds the handler set over it
func newTestEnv(t *testing.T) (*gorm.DB, database.Database, *routeHandlers) {
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

	currentDB := database.New(db)
	c := testConfig()
	authService := services.NewAuthService(c, currentDB.UserRepo())
	handlers := initializeHandlers(currentDB, c, authService, time.Now())

	return db, currentDB, handlers
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

func seedProject(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, title, slug string, createdAt time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slug,
		Description: title + " description",
		CategoryID:  category.ID,
		UserID:      owner.ID,
		IsActive:    true,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
