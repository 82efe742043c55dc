package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/buidlhub/buidlhub-backend/config"
	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/errs"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the subset of the Google userinfo response the service
// needs to provision an account.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type AuthService struct {
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	oauthConfig *oauth2.Config
	secret      []byte
	tokenTTL    time.Duration
}

func NewAuthService(c map[string]string, userRepo *database.UserRepo) AuthService {
	siteURL := config.GetString(c, "SITE_URL", "http://localhost:3000")
	oauthConfig := &oauth2.Config{
		ClientID:     config.GetString(c, "GOOGLE_CLIENT_ID", ""),
		ClientSecret: config.GetString(c, "GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  siteURL + "/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	ttlHours := config.GetInt(c, "SESSION_TTL_HOURS", 72)

	return AuthService{
		logger:      log.With().Str("serviceName", "authService").Logger(),
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
		secret:      []byte(config.GetString(c, "SESSION_SECRET", "")),
		tokenTTL:    time.Duration(ttlHours) * time.Hour,
	}
}

// AuthCodeURL builds the Google consent redirect for a CSRF state value
func (s AuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the signed-in Google profile
func (s AuthService) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errs.NewUnauthorizedError("authorization code exchange failed")
	}

	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("fetching identity profile failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewUnauthorizedError(fmt.Sprintf("identity provider returned status %d", resp.StatusCode))
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errs.NewInternalErrorWithCause("decoding identity profile failed", err)
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, errs.NewUnauthorizedError("identity profile is incomplete")
	}

	return &profile, nil
}

// EnsureUser returns the account linked to the external identity, creating
// it on first sign-in. The username comes from the email local part and is
// made globally unique with numeric suffixes; the unique constraint plus
// retry in InsertUnique absorbs concurrent first sign-ins.
func (s AuthService) EnsureUser(profile *GoogleProfile) (*models.User, error) {
	user, err := s.userRepo.FindByAuthID(profile.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user != nil {
		return user, nil
	}

	displayName := profile.Name
	if displayName == "" {
		displayName = profile.Email
	}

	newUser := &models.User{
		ID:          uuid.New(),
		AuthID:      profile.ID,
		Email:       profile.Email,
		DisplayName: displayName,
		AvatarURL:   profile.Picture,
		Role:        models.RoleSubmitter,
		IsActive:    true,
	}

	base := UsernameFromEmail(profile.Email)
	username, err := InsertUnique(base, "", s.userRepo.UsernameExists, func(candidate string) error {
		newUser.Username = candidate
		return s.userRepo.Add(newUser)
	})
	if err != nil {
		if errs.IsDuplicateKey(err) || errs.IsConflict(err) {
			return nil, err
		}
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	s.logger.Info().Str("username", username).Msg("Provisioned new user on first sign-in")
	return newUser, nil
}

// IssueToken mints an HS256 session token for a signed-in user
func (s AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("signing session token failed", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns the user ID it names
func (s AuthService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, errs.NewExpiredTokenError()
		}
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}
	return userID, nil
}
