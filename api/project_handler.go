package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	authService     services.AuthService
	userRepo        *database.UserRepo
	categoryRepo    *database.CategoryRepo
	projectRepo     *database.ProjectRepo
	projectViewRepo *database.ProjectViewRepo
	reviewRepo      *database.ReviewRepo
}

func newProjectHandler(db database.Database, authService services.AuthService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		authService:     authService,
		userRepo:        db.UserRepo(),
		categoryRepo:    db.CategoryRepo(),
		projectRepo:     db.ProjectRepo(),
		projectViewRepo: db.ProjectViewRepo(),
		reviewRepo:      db.ReviewRepo(),
	}
}

// createProjectRequest is the submission payload
type createProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	LogoURL     string   `json:"logo_url"`
	WebsiteURL  string   `json:"website_url"`
	GithubURL   string   `json:"github_url"`
	Tags        []string `json:"tags"`
}

// getCatalog serves one filtered catalog page.
// @Summary Browse the project catalog
// @Description Returns a page of projects with tags and owner info, plus pagination metadata
// @Tags Projects
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Substring match over title or description"
// @Param featured query bool false "Featured projects only"
// @Param username query string false "Owner username"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} ProjectPage "Catalog page"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /projects [get]
func (h projectHandler) getCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit := database.DefaultPageLimit
		if raw := query.Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		offset := 0
		if raw := query.Get("offset"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
				offset = parsed
			}
		}

		filter := database.ProjectFilter{
			Search:       strings.TrimSpace(query.Get("search")),
			FeaturedOnly: query.Get("featured") == "true",
		}

		// Category and username filters are slugs/names on the wire and
		// need resolving to IDs first. An unknown value matches nothing.
		if categorySlug := query.Get("category"); categorySlug != "" {
			category, err := h.categoryRepo.FindBySlug(categorySlug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
				return
			}
			if category == nil {
				h.responder.WriteJSON(w, ProjectPage{Projects: []CatalogProject{}})
				return
			}
			filter.CategoryID = &category.ID
		}

		if username := query.Get("username"); username != "" {
			owner, err := h.userRepo.FindActiveByUsername(username)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
				return
			}
			if owner == nil {
				h.responder.WriteJSON(w, ProjectPage{Projects: []CatalogProject{}})
				return
			}
			filter.UserID = &owner.ID
		}

		projects, err := h.projectRepo.FindPage(filter, limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		total, err := h.projectRepo.CountByFilter(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "projects", err))
			return
		}

		page := ProjectPage{
			Projects: make([]CatalogProject, 0, len(projects)),
			Total:    total,
			HasMore:  int64(offset+limit) < total,
		}
		for _, project := range projects {
			page.Projects = append(page.Projects, newCatalogProject(project))
		}

		h.responder.WriteJSON(w, page)
	}
}

// createProject submits a new listing.
// @Summary Submit a project
// @Description Creates a project with a per-user unique slug and its tags in one transaction
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} CatalogProject "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - missing title or category"
// @Failure 404 {object} ErrorResponse "Not Found - unknown category"
// @Failure 409 {object} ErrorResponse "Conflict - slug could not be claimed"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if strings.TrimSpace(req.Category) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		category, err := h.categoryRepo.FindBySlug(req.Category)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("category"))
			return
		}

		project := &models.Project{
			ID:          uuid.New(),
			Title:       req.Title,
			Description: req.Description,
			LogoURL:     req.LogoURL,
			WebsiteURL:  req.WebsiteURL,
			GithubURL:   req.GithubURL,
			CategoryID:  category.ID,
			UserID:      userID,
			IsActive:    true,
		}

		// Slug is claimed under the per-user unique constraint; a lost
		// insert race re-resolves with the next suffix.
		base := services.Slugify(req.Title)
		if base == "" {
			base = "project"
		}
		slugExists := func(candidate string) (bool, error) {
			return h.projectRepo.SlugExists(userID, candidate)
		}
		_, err = services.InsertUnique(base, "-", slugExists, func(candidate string) error {
			project.Slug = candidate
			return h.projectRepo.AddWithTags(project, req.Tags)
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		// Reload with associations for the response shape
		created, err := h.projectRepo.FindByUserAndSlug(userID, project.Slug)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCatalogProject(created))
	}
}

// getProjectDetail serves one project's detail page payload and records the
// view as a side effect.
// @Summary Get project detail
// @Description Resolves a project by owner username and slug, with category, tags, reviews and rating
// @Tags Projects
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectDetail "Project detail"
// @Failure 404 {object} ErrorResponse "Not Found - unknown user or project"
// @Router /projects/{username}/{slug} [get]
func (h projectHandler) getProjectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		slug := chi.URLParam(r, "slug")

		owner, err := h.userRepo.FindActiveByUsername(username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if owner == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		project, err := h.projectRepo.FindByUserAndSlug(owner.ID, slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.recordView(r, project)

		reviews, err := h.reviewRepo.FindByProject(project.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to load project reviews")
			reviews = []*models.Review{}
		}
		averageRating, err := h.reviewRepo.AverageRating(project.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to compute average rating")
		}

		detail := ProjectDetail{
			CatalogProject: newCatalogProject(project),
			Reviews:        reviews,
			AverageRating:  averageRating,
			ReviewCount:    len(reviews),
		}
		// The response reflects the view that was just recorded.
		detail.Views = project.Views + 1

		h.responder.WriteJSON(w, detail)
	}
}

// recordView appends the view event and bumps the materialized counter.
// Fire-and-forget relative to rendering: a failed write is logged, never
// surfaced to the viewer.
func (h projectHandler) recordView(r *http.Request, project *models.Project) {
	view := &models.ProjectView{
		ID:        uuid.New(),
		ProjectID: project.ID,
		IPAddress: remoteIP(r),
		UserAgent: r.UserAgent(),
	}

	// Attribute the view when the request carries a valid session token.
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if userID, err := h.authService.ParseToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
			view.UserID = &userID
		}
	}

	if err := h.projectViewRepo.Record(view); err != nil {
		h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to record project view")
	}
}

func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// createReview adds a rating to a project.
// @Summary Review a project
// @Description Creates a 1-5 rating with optional comment; one review per user per project
// @Tags Projects
// @Accept json
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Project slug"
// @Success 201 {object} models.Review "Created review"
// @Failure 400 {object} ErrorResponse "Bad Request - rating out of range"
// @Failure 404 {object} ErrorResponse "Not Found - unknown user or project"
// @Failure 409 {object} ErrorResponse "Conflict - already reviewed"
// @Router /projects/{username}/{slug}/reviews [post]
func (h projectHandler) createReview() http.HandlerFunc {
	type createReviewRequest struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		owner, err := h.userRepo.FindActiveByUsername(chi.URLParam(r, "username"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if owner == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		project, err := h.projectRepo.FindByUserAndSlug(owner.ID, chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var req createReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("review", err))
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("rating", "must be between 1 and 5"))
			return
		}

		review := &models.Review{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := h.reviewRepo.Add(review); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "review", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, review)
	}
}
