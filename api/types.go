package api

import (
	"time"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	categoryHandler  categoryHandler
	projectHandler   projectHandler
	dashboardHandler dashboardHandler
	userHandler      userHandler
	statsHandler     statsHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectOwner is the embedded owner shape in catalog responses
type ProjectOwner struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// CatalogProject is one catalog row: tag rows flattened to plain strings,
// owner reduced to username/display name.
type CatalogProject struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	LogoURL     string           `json:"logo_url,omitempty"`
	WebsiteURL  string           `json:"website_url,omitempty"`
	GithubURL   string           `json:"github_url,omitempty"`
	Category    *models.Category `json:"category,omitempty"`
	IsFeatured  bool             `json:"is_featured"`
	Views       int64            `json:"views"`
	CreatedAt   time.Time        `json:"created_at"`
	Tags        []string         `json:"tags"`
	Owner       *ProjectOwner    `json:"owner,omitempty"`
}

// ProjectPage is one catalog page plus its pagination metadata
type ProjectPage struct {
	Projects []CatalogProject `json:"projects"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

// ProjectDetail is the full detail-page payload
type ProjectDetail struct {
	CatalogProject
	Reviews       []*models.Review `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
}

func newCatalogProject(project *models.Project) CatalogProject {
	tags := make([]string, 0, len(project.Tags))
	for _, tag := range project.Tags {
		tags = append(tags, tag.Value)
	}

	var owner *ProjectOwner
	if project.Owner != nil {
		owner = &ProjectOwner{
			Username:    project.Owner.Username,
			DisplayName: project.Owner.DisplayName,
		}
	}

	return CatalogProject{
		ID:          project.ID,
		Title:       project.Title,
		Slug:        project.Slug,
		Description: project.Description,
		LogoURL:     project.LogoURL,
		WebsiteURL:  project.WebsiteURL,
		GithubURL:   project.GithubURL,
		Category:    project.Category,
		IsFeatured:  project.IsFeatured,
		Views:       project.Views,
		CreatedAt:   project.CreatedAt,
		Tags:        tags,
		Owner:       owner,
	}
}

// CategoryWithCount is a category annotated with its active-project count
type CategoryWithCount struct {
	*models.Category
	ProjectsCount int64 `json:"projects_count"`
}
