package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRouter(handlers *routeHandlers) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/projects", handlers.projectHandler.getCatalog())
	r.Get("/projects/{username}/{slug}", handlers.projectHandler.getProjectDetail())
	r.Post("/projects", handlers.projectHandler.createProject())
	r.Post("/projects/{username}/{slug}/reviews", handlers.projectHandler.createReview())
	return r
}

func TestGetCatalogPagination(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	category := seedCategory(t, db, "defi")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedProject(t, db, alice, category, fmt.Sprintf("Project %d", i), fmt.Sprintf("project-%d", i), base.Add(time.Duration(i)*time.Hour))
	}

	router := catalogRouter(handlers)

	// First page of two: more remains.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/projects?limit=2&offset=0", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page ProjectPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Projects, 2)
	assert.EqualValues(t, 5, page.Total)
	assert.True(t, page.HasMore)

	// Last page: one row, nothing more.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/projects?limit=2&offset=4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Projects, 1)
	assert.EqualValues(t, 5, page.Total)
	assert.False(t, page.HasMore)
}

func TestGetCatalogSearchFilter(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	category := seedCategory(t, db, "defi")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProject(t, db, alice, category, "Token Swap", "token-swap", base)
	seedProject(t, db, alice, category, "NFT Gallery", "nft-gallery", base)

	rec := httptest.NewRecorder()
	catalogRouter(handlers).ServeHTTP(rec, httptest.NewRequest("GET", "/projects?search=SWAP", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page ProjectPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Projects, 1)
	for _, project := range page.Projects {
		haystack := strings.ToLower(project.Title + " " + project.Description)
		assert.Contains(t, haystack, "swap")
	}
}

func TestGetCatalogUnknownCategoryMatchesNothing(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	category := seedCategory(t, db, "defi")
	seedProject(t, db, alice, category, "Alpha", "alpha", time.Now())

	rec := httptest.NewRecorder()
	catalogRouter(handlers).ServeHTTP(rec, httptest.NewRequest("GET", "/projects?category=missing", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page ProjectPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Projects)
	assert.Zero(t, page.Total)
}

func TestCreateProjectGeneratesUniqueSlugs(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	seedCategory(t, db, "defi")
	router := catalogRouter(handlers)

	submit := func(title string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{
			"title":    title,
			"category": "defi",
			"tags":     []string{"swap"},
		})
		req := httptest.NewRequest("POST", "/projects", bytes.NewReader(body))
		req = req.WithContext(ctxWithUserID(req.Context(), alice.ID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := submit("My Cool dApp!!")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created CatalogProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "my-cool-dapp", created.Slug)
	assert.Equal(t, []string{"swap"}, created.Tags)
	require.NotNil(t, created.Owner)
	assert.Equal(t, "alice", created.Owner.Username)

	// Same title again: suffixed slug, same owner scope.
	rec = submit("My Cool dApp!!")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "my-cool-dapp-1", created.Slug)
}

func TestCreateProjectValidation(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	seedCategory(t, db, "defi")
	router := catalogRouter(handlers)

	send := func(payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/projects", bytes.NewReader(body))
		req = req.WithContext(ctxWithUserID(req.Context(), alice.ID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, send(map[string]any{"category": "defi"}).Code)
	assert.Equal(t, http.StatusBadRequest, send(map[string]any{"title": "Alpha"}).Code)
	assert.Equal(t, http.StatusNotFound, send(map[string]any{"title": "Alpha", "category": "missing"}).Code)
}

func TestGetProjectDetailRecordsView(t *testing.T) {
	db, currentDB, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	category := seedCategory(t, db, "defi")
	project := seedProject(t, db, alice, category, "Alpha", "alpha", time.Now())
	router := catalogRouter(handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/projects/alice/alpha", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail ProjectDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Alpha", detail.Title)
	assert.EqualValues(t, 1, detail.Views)

	// The view landed in both the event log and the materialized counter.
	reloaded, err := currentDB.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, reloaded.Views)

	counts, err := currentDB.ProjectViewRepo().CountsByProjects([]uuid.UUID{project.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[project.ID])
}

func TestGetProjectDetailNotFound(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	category := seedCategory(t, db, "defi")
	seedProject(t, db, alice, category, "Alpha", "alpha", time.Now())
	router := catalogRouter(handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/projects/nobody/alpha", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/projects/alice/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReview(t *testing.T) {
	db, _, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	category := seedCategory(t, db, "defi")
	seedProject(t, db, alice, category, "Alpha", "alpha", time.Now())
	router := catalogRouter(handlers)

	send := func(rating int) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{"rating": rating, "comment": "solid"})
		req := httptest.NewRequest("POST", "/projects/alice/alpha/reviews", bytes.NewReader(body))
		req = req.WithContext(ctxWithUserID(req.Context(), bob.ID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, send(0).Code)
	assert.Equal(t, http.StatusBadRequest, send(6).Code)
	require.Equal(t, http.StatusCreated, send(5).Code)

	assert.Equal(t, http.StatusConflict, send(4).Code, "second review by the same user conflicts")
}
