package services

import (
	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DashboardStats summarizes a user's footprint in the directory. View
// totals come from the project_views event rows, the authoritative counter.
type DashboardStats struct {
	ProjectsSubmitted int      `json:"projects_submitted"`
	TotalViews        int64    `json:"total_views"`
	TotalTags         int64    `json:"total_tags"`
	FeaturedCount     int      `json:"featured_count"`
}

// DashboardProject is a project row annotated with its event-derived view
// count.
type DashboardProject struct {
	*models.Project
	ViewCount int64 `json:"view_count"`
}

// Dashboard is the full payload for a user's dashboard page
type Dashboard struct {
	Profile        *models.User       `json:"profile"`
	Stats          DashboardStats     `json:"stats"`
	Projects       []DashboardProject `json:"projects"`
	RecentActivity []any              `json:"recent_activity"`
}

type DashboardService struct {
	logger          zerolog.Logger
	userRepo        *database.UserRepo
	projectRepo     *database.ProjectRepo
	projectTagRepo  *database.ProjectTagRepo
	projectViewRepo *database.ProjectViewRepo
}

func NewDashboardService(db database.Database) DashboardService {
	return DashboardService{
		logger:          log.With().Str("serviceName", "dashboardService").Logger(),
		userRepo:        db.UserRepo(),
		projectRepo:     db.ProjectRepo(),
		projectTagRepo:  db.ProjectTagRepo(),
		projectViewRepo: db.ProjectViewRepo(),
	}
}

// Build assembles the dashboard for one user. Sub-fetch failures are
// logged and degrade to defaults rather than failing the page, so the
// caller always gets a renderable payload.
func (s DashboardService) Build(userID uuid.UUID) Dashboard {
	dashboard := Dashboard{
		Projects:       []DashboardProject{},
		RecentActivity: []any{},
	}

	profile, err := s.userRepo.FindByID(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to load dashboard profile")
	} else {
		dashboard.Profile = profile
	}

	projects, err := s.projectRepo.FindByUser(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to load dashboard projects")
		return dashboard
	}

	projectIDs := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
	}

	viewCounts, err := s.projectViewRepo.CountsByProjects(projectIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count project views")
		viewCounts = map[uuid.UUID]int64{}
	}

	totalTags, err := s.projectTagRepo.CountByProjects(projectIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count project tags")
		totalTags = 0
	}

	stats := DashboardStats{
		ProjectsSubmitted: len(projects),
		TotalTags:         totalTags,
	}
	for _, project := range projects {
		views := viewCounts[project.ID]
		stats.TotalViews += views
		if project.IsFeatured {
			stats.FeaturedCount++
		}
		dashboard.Projects = append(dashboard.Projects, DashboardProject{
			Project:   project,
			ViewCount: views,
		})
	}
	dashboard.Stats = stats

	return dashboard
}
