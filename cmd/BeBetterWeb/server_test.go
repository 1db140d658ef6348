package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/BeBetterWeb/internal/auth"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/application"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/infrastructure"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/interfaces"
)

type stubHealth struct {
	stats map[string]string
}

func (s stubHealth) Health(ctx context.Context) map[string]string {
	return s.stats
}

type testServer struct {
	handler      http.Handler
	jwtManager   *auth.JWTManager
	categoryRepo *infrastructure.MockCategoryRepository
}

func newTestServer(t *testing.T, health HealthChecker) testServer {
	t.Helper()
	categoryRepo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{{ID: "1", Name: "Tech"}, {ID: "2", Name: "Life"}},
	}
	tagRepo := &infrastructure.MockTagRepository{Tags: []domain.Tag{{ID: "t1", Name: "focus"}}}

	cache := application.NewReferenceCache(categoryRepo, tagRepo, application.CacheConfig{RefreshInterval: time.Hour})
	cache.Initialize(context.Background())
	t.Cleanup(cache.Destroy)

	jwtManager, err := auth.NewJWTManager("test-secret")
	require.NoError(t, err)

	server := NewServer(
		interfaces.NewCategoryHandler(cache, respondJSON, respondError),
		interfaces.NewTagHandler(cache, respondJSON, respondError),
		interfaces.NewStatusHandler(cache, respondJSON, respondError),
		jwtManager,
		[]string{"service_role"},
		health,
	)
	server.RegisterRoutes()
	return testServer{handler: server.Handler(), jwtManager: jwtManager, categoryRepo: categoryRepo}
}

func (ts testServer) do(t *testing.T, method, target, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	return w.Code, body
}

func TestServer_PublicReferenceRoutes(t *testing.T) {
	ts := newTestServer(t, stubHealth{stats: map[string]string{"status": "up"}})

	code, body := ts.do(t, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], 2)

	code, body = ts.do(t, http.MethodGet, "/api/categories/lookup?ids=1,9", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], 1)

	code, _ = ts.do(t, http.MethodGet, "/api/tags/t1", "")
	assert.Equal(t, http.StatusOK, code)

	code, body = ts.do(t, http.MethodGet, "/api/reference/status", "")
	assert.Equal(t, http.StatusOK, code)
	cache := body["cache"].(map[string]interface{})
	assert.Equal(t, true, cache["isInitialized"])
	assert.Equal(t, float64(2), cache["categoriesCount"])

	code, body = ts.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Path not found", body["message"])
}

func TestServer_ForceRefreshRequiresServiceRole(t *testing.T) {
	ts := newTestServer(t, stubHealth{stats: map[string]string{"status": "up"}})
	ts.categoryRepo.Set([]domain.Category{
		{ID: "1", Name: "Tech"},
		{ID: "2", Name: "Life"},
		{ID: "3", Name: "Travel"},
	}, nil)

	code, _ := ts.do(t, http.MethodPost, "/api/protected/reference/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	userToken, err := ts.jwtManager.GenerateAccessJWT("user-1", "authenticated", time.Minute)
	require.NoError(t, err)
	code, _ = ts.do(t, http.MethodPost, "/api/protected/reference/refresh", userToken)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := ts.do(t, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], 2, "cache must stay stale until a refresh")

	serviceToken, err := ts.jwtManager.GenerateAccessJWT("admin", "service_role", time.Minute)
	require.NoError(t, err)
	code, body = ts.do(t, http.MethodPost, "/api/protected/reference/refresh", serviceToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reference cache refreshed.", body["message"])

	_, body = ts.do(t, http.MethodGet, "/api/categories", "")
	assert.Len(t, body["categories"], 3)
}

func TestServer_Ready(t *testing.T) {
	ts := newTestServer(t, stubHealth{stats: map[string]string{"status": "up"}})
	code, body := ts.do(t, http.MethodGet, "/api/ready", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])

	ts = newTestServer(t, stubHealth{stats: map[string]string{"status": "down", "error": "db down: refused"}})
	code, body = ts.do(t, http.MethodGet, "/api/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "db down: refused", body["error"])
}
