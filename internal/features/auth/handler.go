package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	tokens TokenConfig
}

// NewHandler constructs an auth handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		tokens: TokenConfig{JWTSecret: cfg.JWTSecret, AccessTokenExpiry: cfg.JWTExpiry},
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Register creates a learner account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	result, err := Register(h.db.WithContext(c.Request.Context()), RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, h.tokens)
	if err != nil {
		metrics.RecordAuthAttempt("register", "rejected")
		h.respondError(c, err)
		return
	}

	metrics.RecordAuthAttempt("register", "success")
	h.logger.Info("account registered", slog.String("user_id", result.User.ID.String()))
	response.OK(c, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for an access token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	result, err := Login(h.db.WithContext(c.Request.Context()), LoginInput{Email: req.Email, Password: req.Password}, h.tokens)
	if err != nil {
		metrics.RecordAuthAttempt("login", "rejected")
		h.respondError(c, err)
		return
	}

	metrics.RecordAuthAttempt("login", "success")
	response.OK(c, result)
}

// Me returns the authenticated account.
func (h *Handler) Me(c *gin.Context) {
	current, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	account, err := user.Get(h.db.WithContext(c.Request.Context()), current.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, account.ToResponse())
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, ErrInactiveAccount):
		response.ErrorWithLog(h.logger, c, http.StatusForbidden, "Account is deactivated", err)
	case errors.Is(err, user.ErrEmailTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Email already registered", err)
	case errors.Is(err, user.ErrUserNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidUsername),
		errors.Is(err, user.ErrInvalidPassword):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
