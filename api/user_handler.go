package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// getMe returns the signed-in user's profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} models.User "Profile"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /me [get]
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// updateMeRequest carries the editable profile fields. Pointers distinguish
// "not sent" from "clear this field".
type updateMeRequest struct {
	Username      *string `json:"username"`
	DisplayName   *string `json:"display_name"`
	Bio           *string `json:"bio"`
	AvatarURL     *string `json:"avatar_url"`
	WalletAddress *string `json:"wallet_address"`
}

// updateMe edits the signed-in user's profile. A username change claims the
// exact requested name; if another account holds it the store's unique
// constraint answers 409 rather than silently suffixing a name the user
// chose deliberately.
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body updateMeRequest true "Profile fields"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid username"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Conflict - username taken"
// @Router /me [put]
func (h userHandler) updateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		var req updateMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile", err))
			return
		}

		if req.Username != nil {
			username := strings.ToLower(strings.TrimSpace(*req.Username))
			if username == "" {
				h.responder.WriteError(w, errs.NewInvalidFieldError("username", "cannot be empty"))
				return
			}
			if username != user.Username {
				taken, err := h.userRepo.UsernameExists(username)
				if err != nil {
					h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
					return
				}
				if taken {
					h.responder.WriteError(w, errs.NewAlreadyExists("username"))
					return
				}
				user.Username = username
			}
		}
		if req.DisplayName != nil {
			user.DisplayName = *req.DisplayName
		}
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.AvatarURL != nil {
			user.AvatarURL = *req.AvatarURL
		}
		if req.WalletAddress != nil {
			user.WalletAddress = req.WalletAddress
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
