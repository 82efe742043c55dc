package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buidlhub/buidlhub-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	db, currentDB, handlers := newTestEnv(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	category := seedCategory(t, db, "defi")
	project := seedProject(t, db, alice, category, "Alpha", "alpha", time.Now())
	seedProject(t, db, bob, category, "Beta", "beta", time.Now())

	require.NoError(t, currentDB.ProjectViewRepo().Record(&models.ProjectView{ID: uuid.New(), ProjectID: project.ID}))

	rec := httptest.NewRecorder()
	handlers.statsHandler.getStats()(rec, httptest.NewRequest("GET", "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats DirectoryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats.TotalProjects)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalCategories)
	assert.EqualValues(t, 1, stats.TotalViews)
}

func TestHealth(t *testing.T) {
	_, _, handlers := newTestEnv(t)

	rec := httptest.NewRecorder()
	handlers.statsHandler.health()(rec, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, payload["uptime"])
}
