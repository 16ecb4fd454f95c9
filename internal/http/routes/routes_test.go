package routes

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/bootstrap"
	"github.com/mo-amir99/langswap-server-go/internal/testutil"
	"github.com/mo-amir99/langswap-server-go/pkg/cache"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/logger"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t, bootstrap.Models()...)

	cfg := &config.Config{
		Env:       "test",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
		Redis:     config.RedisConfig{TTL: time.Minute},
		Admin:     config.AdminConfig{Email: "admin@example.com", Password: "password123", Username: "admin"},
	}
	require.NoError(t, bootstrap.EnsureDefaultAdmin(db, cfg.Admin, logger.Discard()))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	engine, _ := testutil.NewRouter(t)
	Register(ctx, engine, cfg, db, cache.NewMemoryCache(), logger.Discard())
	return engine, db
}

func login(t *testing.T, engine *gin.Engine, email, password string) string {
	t.Helper()
	rec := testutil.SendRequest(t, engine, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return testutil.ParseResponse[map[string]any](t, rec)["accessToken"].(string)
}

func TestProbesAndMetrics(t *testing.T) {
	engine, _ := setupServer(t)

	for _, path := range []string{"/health", "/ready", "/version", "/metrics", "/debug/db-stats"} {
		rec := testutil.SendRequest(t, engine, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := testutil.SendRequest(t, engine, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, rec.Body.String())

	rec = testutil.SendRequest(t, engine, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"LangSwap Language Learning API"}`, rec.Body.String())
}

func TestLearnerFlow(t *testing.T) {
	engine, _ := setupServer(t)
	adminToken := login(t, engine, "admin@example.com", "password123")

	rec := testutil.SendRequest(t, engine, http.MethodPost, "/api/init-data", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testutil.SendAuthorized(t, engine, http.MethodPost, "/api/init-data", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.SendRequest(t, engine, http.MethodGet, "/api/lessons?languageMode=learn-thai", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lessons := testutil.ParseResponse[[]map[string]any](t, rec)
	require.NotEmpty(t, lessons)
	first := lessons[0]
	assert.Equal(t, "Thai Consonants", first["title"])
	lessonID := first["id"].(string)

	rec = testutil.SendRequest(t, engine, http.MethodPost, "/api/progress", map[string]any{
		"userId": "u1", "lessonId": lessonID, "completed": false, "completedItems": []int{2, 0, 2},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.SendRequest(t, engine, http.MethodGet, "/api/progress?userId=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records := testutil.ParseResponse[[]map[string]any](t, rec)
	require.Len(t, records, 1)
	assert.Equal(t, []any{float64(0), float64(2)}, records[0]["completedItems"])

	item := first["items"].([]any)[0]
	toggle := map[string]any{"userId": "u1", "lessonId": lessonID, "itemIndex": 0, "itemData": item}
	rec = testutil.SendRequest(t, engine, http.MethodPost, "/api/favorites", toggle)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "added", testutil.ParseResponse[map[string]any](t, rec)["action"])

	rec = testutil.SendRequest(t, engine, http.MethodPost, "/api/favorites", toggle)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "removed", testutil.ParseResponse[map[string]any](t, rec)["action"])
}

func TestStaffInvitationFlow(t *testing.T) {
	engine, _ := setupServer(t)
	adminToken := login(t, engine, "admin@example.com", "password123")

	rec := testutil.SendAuthorized(t, engine, http.MethodPost, "/api/access-codes/generate", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	code := testutil.ParseResponse[map[string]any](t, rec)["code"].(string)

	rec = testutil.SendRequest(t, engine, http.MethodPost, "/api/access-codes/redeem", map[string]string{
		"code": code, "email": "staff@example.com", "username": "staffer", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	staffToken := login(t, engine, "staff@example.com", "password123")
	rec = testutil.SendAuthorized(t, engine, http.MethodGet, "/api/me", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", testutil.ParseResponse[map[string]any](t, rec)["role"])

	rec = testutil.SendAuthorized(t, engine, http.MethodGet, "/api/staff", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.SendAuthorized(t, engine, http.MethodGet, "/api/staff", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[[]map[string]any](t, rec), 1)
}

func TestAuthEndpointsAreThrottled(t *testing.T) {
	engine, _ := setupServer(t)

	body := map[string]string{"email": "nobody@example.com", "password": "wrong-password"}
	for i := 0; i < authRequestsPerMinute; i++ {
		rec := testutil.SendRequest(t, engine, http.MethodPost, "/api/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := testutil.SendRequest(t, engine, http.MethodPost, "/api/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
