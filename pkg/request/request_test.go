package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/apperrors"
	"github.com/mo-amir99/langswap-server-go/pkg/logger"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{errors.New("dial tcp 127.0.0.1:5432: connection refused"), http.StatusServiceUnavailable},
		{errors.New(`invalid input syntax for type uuid: "abc"`), http.StatusBadRequest},
		{errors.New("something odd"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err).StatusCode(), tt.err.Error())
	}
}

func TestHandlerWritesEnvelopeForAttachedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Handler(logger.Discard()))
	r.GET("/slow", func(c *gin.Context) { _ = c.Error(context.DeadlineExceeded) })
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperrors.New("Email already registered", http.StatusConflict, apperrors.ErrConflict, nil))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Service temporarily unavailable","error":{"code":"unavailable"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestBindJSON(t *testing.T) {
	require.NoError(t, validation.Register())
	gin.SetMode(gin.TestMode)

	type body struct {
		LessonID string `json:"lessonId" binding:"required"`
	}

	bind := func(raw string) *apperrors.AppError {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		var dest body
		return BindJSON(c, &dest)
	}

	assert.Nil(t, bind(`{"lessonId":"x"}`))

	appErr := bind(``)
	require.NotNil(t, appErr)
	assert.Equal(t, "Request body is required", appErr.Message())

	appErr = bind(`{}`)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code())
	assert.Equal(t, map[string]string{"lessonId": "is required"}, appErr.Fields())

	appErr = bind(`{"lessonId":`)
	require.NotNil(t, appErr)
	assert.Equal(t, "Malformed JSON payload", appErr.Message())
}

func TestBindOptionalJSON(t *testing.T) {
	require.NoError(t, validation.Register())
	gin.SetMode(gin.TestMode)

	type body struct {
		ValidDays int `json:"validDays" binding:"omitempty,min=1"`
	}

	bind := func(req *http.Request) (body, *apperrors.AppError) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = req
		var dest body
		return dest, BindOptionalJSON(c, &dest)
	}

	_, appErr := bind(httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Nil(t, appErr)

	chunked := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("")))
	chunked.ContentLength = -1
	chunked.TransferEncoding = []string{"chunked"}
	_, appErr = bind(chunked)
	assert.Nil(t, appErr)

	got, appErr := bind(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"validDays":3}`)))
	require.Nil(t, appErr)
	assert.Equal(t, 3, got.ValidDays)

	_, appErr = bind(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"validDays":0`)))
	require.NotNil(t, appErr)
	assert.Equal(t, "Malformed JSON payload", appErr.Message())
}

func TestUserIDOrDefault(t *testing.T) {
	assert.Equal(t, DefaultUserID, UserIDOrDefault("   "))
	assert.Equal(t, "u1", UserIDOrDefault(" u1 "))
}
