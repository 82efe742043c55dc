package api

import (
	"net/http"
	"net/url"

	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const stateCookieName = "oauth_state"

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	authService services.AuthService
	siteURL     string
}

func newAuthHandler(authService services.AuthService, siteURL string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		authService: authService,
		siteURL:     siteURL,
	}
}

// login redirects the browser to the Google consent screen with a CSRF
// state value pinned in a short-lived cookie.
// @Summary Start Google sign-in
// @Tags Auth
// @Success 307 "Redirect to identity provider"
// @Router /auth/google [get]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, h.authService.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

// callback finishes the code flow: state check, code exchange, first-login
// provisioning, session token issue, then a redirect back to the site with
// the token in the fragment-safe query.
// @Summary Finish Google sign-in
// @Tags Auth
// @Success 307 "Redirect back to the site with a session token"
// @Failure 401 {object} ErrorResponse "Unauthorized - state mismatch or failed exchange"
// @Router /auth/google/callback [get]
func (h authHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			h.responder.WriteError(w, errs.NewUnauthorizedError("oauth state mismatch"))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authorization code"))
			return
		}

		profile, err := h.authService.Exchange(r.Context(), code)
		if err != nil {
			h.logger.Error().Err(err).Msg("OAuth code exchange failed")
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.authService.EnsureUser(profile)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to provision user")
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.authService.IssueToken(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Clear the state cookie now that the flow is complete.
		http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

		redirect := h.siteURL + "/auth/complete?token=" + url.QueryEscape(token)
		http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
	}
}
