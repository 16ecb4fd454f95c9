package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/utils/jwt"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

const contextUserKey = "user"

var (
	ErrMissingToken    = errors.New("no bearer token provided")
	ErrUnknownSubject  = errors.New("token subject does not resolve to a user")
	ErrAccountDisabled = errors.New("account is deactivated")
)

// User is the authenticated account as seen by request handlers.
type User struct {
	ID          uuid.UUID                   `gorm:"column:id;primaryKey"`
	Email       string                      `gorm:"column:email"`
	Username    string                      `gorm:"column:username"`
	Role        types.Role                  `gorm:"column:role"`
	Permissions datatypes.JSONSlice[string] `gorm:"column:permissions"`
	Active      bool                        `gorm:"column:is_active"`
	CreatedAt   time.Time                   `gorm:"column:created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// AuthMiddleware holds dependencies for authentication middleware
type AuthMiddleware struct {
	db        *gorm.DB
	jwtSecret string
	logger    *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(db *gorm.DB, jwtSecret string, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// VerifyToken checks signature and expiry and resolves the subject email to an account.
func VerifyToken(ctx context.Context, db *gorm.DB, token, secret string) (*User, error) {
	claims, err := jwt.VerifyToken(token, secret)
	if err != nil {
		return nil, err
	}

	var usr User
	err = db.WithContext(ctx).Where("email = ?", strings.ToLower(claims.Subject)).First(&usr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownSubject
	}
	if err != nil {
		return nil, err
	}

	return &usr, nil
}

// Authenticate validates the bearer token and loads the account into the context.
// Deactivated accounts are refused even while their token is unexpired.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.ensureAuthenticated(c); !ok {
			return
		}
		c.Next()
	}
}

// AuthorizeRoles requires the authenticated account to hold one of roles.
func (m *AuthMiddleware) AuthorizeRoles(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, ok := GetUserFromContext(c)
		if !ok {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
			return
		}

		for _, role := range roles {
			if usr.Role == role {
				c.Next()
				return
			}
		}

		response.ErrorWithLog(m.logger, c, http.StatusForbidden, "Access denied: Insufficient permissions.", nil)
	}
}

// RequireRoles chains authentication and role authorization.
func (m *AuthMiddleware) RequireRoles(roles ...types.Role) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Authenticate(),
		m.AuthorizeRoles(roles...),
	}
}

// Authenticated chains authentication alone, for routes open to every role.
func (m *AuthMiddleware) Authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate()}
}

// GetUserFromContext retrieves the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*User, bool) {
	userVal, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}

	usr, ok := userVal.(*User)
	return usr, ok && usr != nil
}

func (m *AuthMiddleware) ensureAuthenticated(c *gin.Context) (*User, bool) {
	if usr, ok := GetUserFromContext(c); ok {
		return usr, true
	}

	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No token provided", nil)
		return nil, false
	}

	usr, err := VerifyToken(c.Request.Context(), m.db, token, m.jwtSecret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Token expired", err)
		case errors.Is(err, jwt.ErrInvalidToken):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token", err)
		case errors.Is(err, ErrUnknownSubject):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not found", err)
		default:
			c.Error(err)
			c.Abort()
		}
		return nil, false
	}

	if !usr.Active {
		response.ErrorWithLog(m.logger, c, http.StatusForbidden, "Account is deactivated", ErrAccountDisabled)
		return nil, false
	}

	c.Set(contextUserKey, usr)
	return usr, true
}

func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
