package api

import (
	"net/http"

	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder        Responder
	logger           zerolog.Logger
	dashboardService services.DashboardService
}

func newDashboardHandler(dashboardService services.DashboardService) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		dashboardService: dashboardService,
	}
}

// getDashboard serves the signed-in user's dashboard. Sub-fetch failures
// degrade to defaults inside the service, so this always answers 200 for an
// authenticated caller.
// @Summary Get dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Dashboard "Dashboard payload"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, h.dashboardService.Build(userID))
	}
}
