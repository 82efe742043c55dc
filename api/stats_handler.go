package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statsHandler struct {
	responder       Responder
	logger          zerolog.Logger
	userRepo        *database.UserRepo
	categoryRepo    *database.CategoryRepo
	projectRepo     *database.ProjectRepo
	projectViewRepo *database.ProjectViewRepo
	startupTime     time.Time
}

func newStatsHandler(db database.Database, startupTime time.Time) statsHandler {
	logger := log.With().Str("handlerName", "statsHandler").Logger()

	return statsHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		userRepo:        db.UserRepo(),
		categoryRepo:    db.CategoryRepo(),
		projectRepo:     db.ProjectRepo(),
		projectViewRepo: db.ProjectViewRepo(),
		startupTime:     startupTime,
	}
}

// DirectoryStats is the homepage aggregate
type DirectoryStats struct {
	TotalProjects   int64 `json:"total_projects"`
	TotalUsers      int64 `json:"total_users"`
	TotalCategories int64 `json:"total_categories"`
	TotalViews      int64 `json:"total_views"`
}

// getStats fans out the four independent counts concurrently and joins the
// results. A failed count is logged and reported as zero; the homepage
// renders best-effort rather than failing.
// @Summary Directory stats
// @Tags Stats
// @Produce json
// @Success 200 {object} DirectoryStats "Homepage aggregate"
// @Router /stats [get]
func (h statsHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats DirectoryStats
		var wg sync.WaitGroup

		count := func(target *int64, entity string, fetch func() (int64, error)) {
			defer wg.Done()
			value, err := fetch()
			if err != nil {
				h.logger.Error().Err(err).Str("entity", entity).Msg("Failed to count for stats")
				return
			}
			*target = value
		}

		wg.Add(4)
		go count(&stats.TotalProjects, "projects", h.projectRepo.Count)
		go count(&stats.TotalUsers, "users", h.userRepo.Count)
		go count(&stats.TotalCategories, "categories", h.categoryRepo.Count)
		go count(&stats.TotalViews, "views", h.projectViewRepo.Count)
		wg.Wait()

		h.responder.WriteJSON(w, stats)
	}
}

// health reports liveness and uptime
// @Summary Health check
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]any "Status and uptime"
// @Router /health [get]
func (h statsHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(h.startupTime).String(),
		})
	}
}
