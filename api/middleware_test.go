package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buidlhub/buidlhub-backend/database"
	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/buidlhub/buidlhub-backend/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) services.AuthService {
	return services.NewAuthService(testConfig(), database.New(db).UserRepo())
}

func TestAuthenticatePassesUserIDToHandler(t *testing.T) {
	db, _, _ := newTestEnv(t)
	authService := newTestAuthService(db)
	middleware := newAuthMiddleware(authService)

	user := &models.User{ID: uuid.New()}
	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = ctxGetUserID(r.Context())
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, gotUserID)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db, _, _ := newTestEnv(t)
	middleware := newAuthMiddleware(newTestAuthService(db))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid token")
	})

	// No header at all.
	rec := httptest.NewRecorder()
	middleware.authenticate(next).ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong scheme.
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	middleware.authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	req = httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	middleware.authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
