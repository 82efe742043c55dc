package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

// getCategories serves either the full active list (ordered by sort order)
// or, with ?slug=, a single category. Every row carries its computed
// projects_count.
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param slug query string false "Single category by slug"
// @Success 200 {array} CategoryWithCount "Categories with project counts"
// @Failure 404 {object} ErrorResponse "Not Found - unknown slug"
// @Router /categories [get]
func (h categoryHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if slug := r.URL.Query().Get("slug"); slug != "" {
			category, err := h.categoryRepo.FindBySlug(slug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
				return
			}
			if category == nil {
				h.responder.WriteError(w, errs.NewNotFound("category"))
				return
			}

			count, err := h.categoryRepo.ProjectsCount(category.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count projects for", "category", err))
				return
			}

			h.responder.WriteJSON(w, CategoryWithCount{Category: category, ProjectsCount: count})
			return
		}

		categories, err := h.categoryRepo.FindAllActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}

		response := make([]CategoryWithCount, 0, len(categories))
		for _, category := range categories {
			count, err := h.categoryRepo.ProjectsCount(category.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count projects for", "category", err))
				return
			}
			response = append(response, CategoryWithCount{Category: category, ProjectsCount: count})
		}

		h.responder.WriteJSON(w, response)
	}
}

// createCategory adds a taxonomy node.
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body models.Category true "Category data"
// @Success 201 {object} models.Category "Created category"
// @Failure 400 {object} ErrorResponse "Bad Request - missing name or slug"
// @Failure 409 {object} ErrorResponse "Conflict - slug already exists"
// @Router /categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category models.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("category", err))
			return
		}

		if strings.TrimSpace(category.Name) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		category.Slug = services.Slugify(category.Slug)
		if category.Slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		if category.ID == uuid.Nil {
			category.ID = uuid.New()
		}
		category.IsActive = true

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}
