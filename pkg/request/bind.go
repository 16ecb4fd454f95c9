package request

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mo-amir99/langswap-server-go/pkg/apperrors"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

// DefaultUserID is used by the progress and favorites endpoints when the caller sends no user id.
const DefaultUserID = "default_user"

// BindJSON decodes and validates the request body into dest.
// Validation failures are returned as a 400 AppError listing each bad field.
func BindJSON(c *gin.Context, dest interface{}) *apperrors.AppError {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return apperrors.New("Request body is required", http.StatusBadRequest, apperrors.ErrBadRequest, err)
	}

	if fields := validation.FieldErrors(err); fields != nil {
		return apperrors.Validation("Invalid request payload", fields, err)
	}

	return apperrors.New("Malformed JSON payload", http.StatusBadRequest, apperrors.ErrBadRequest, err)
}

// BindOptionalJSON behaves like BindJSON but accepts a missing or empty body,
// including an empty chunked one, leaving dest untouched.
func BindOptionalJSON(c *gin.Context, dest interface{}) *apperrors.AppError {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}

	appErr := BindJSON(c, dest)
	if appErr != nil && errors.Is(appErr, io.EOF) {
		return nil
	}
	return appErr
}

// UUIDParam parses a path parameter as a uuid.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param(name)))
}

// QueryBool reads a boolean query parameter, treating absence or garbage as fallback.
func QueryBool(c *gin.Context, name string, fallback bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return parsed
}

// UserIDOrDefault trims id and substitutes DefaultUserID when empty.
func UserIDOrDefault(id string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return DefaultUserID
}
