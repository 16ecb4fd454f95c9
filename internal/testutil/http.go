package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mo-amir99/langswap-server-go/pkg/logger"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

// NewRouter returns a gin engine with the error classification middleware and
// custom validators installed, ready for feature routes under /api.
func NewRouter(t testing.TB) (*gin.Engine, *gin.RouterGroup) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	engine := gin.New()
	engine.Use(request.Handler(logger.Discard()))
	return engine, engine.Group("/api")
}

// SendRequest encodes body as JSON (nil sends no body) and serves the request.
func SendRequest(t testing.TB, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return SendAuthorized(t, h, method, path, "", body)
}

// SendAuthorized is SendRequest with a bearer token.
func SendAuthorized(t testing.TB, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload strings.Builder
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, path, strings.NewReader(payload.String()))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ParseResponse decodes the recorded JSON body into T.
func ParseResponse[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), rec.Body.String())
	return resp
}
