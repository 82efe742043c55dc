package api

import (
	"time"

	"github.com/buidlhub/buidlhub-backend/config"
	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, authService services.AuthService, startupTime time.Time) *routeHandlers {
	dashboardService := services.NewDashboardService(database)
	siteURL := config.GetString(c, "SITE_URL", "http://localhost:3000")

	return &routeHandlers{
		authHandler:      newAuthHandler(authService, siteURL),
		categoryHandler:  newCategoryHandler(database.CategoryRepo()),
		projectHandler:   newProjectHandler(database, authService),
		dashboardHandler: newDashboardHandler(dashboardService),
		userHandler:      newUserHandler(database.UserRepo()),
		statsHandler:     newStatsHandler(database, startupTime),
	}
}
