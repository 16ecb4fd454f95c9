package accesscode

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/auth"
	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes access code HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	tokens auth.TokenConfig
}

// NewHandler constructs an access code handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		tokens: auth.TokenConfig{JWTSecret: cfg.JWTSecret, AccessTokenExpiry: cfg.JWTExpiry},
	}
}

type generateRequest struct {
	Permissions []string `json:"permissions" binding:"omitempty,dive,permission"`
	ValidDays   int      `json:"validDays" binding:"omitempty,min=1,max=365"`
}

type generateResponse struct {
	Code        string    `json:"code"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Permissions []string  `json:"permissions"`
}

// Generate issues a new staff invitation code. The body is optional.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if appErr := request.BindOptionalJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	admin, _ := middleware.GetUserFromContext(c)
	accessCode, err := Generate(h.db.WithContext(c.Request.Context()), GenerateInput{
		Permissions: req.Permissions,
		ValidDays:   req.ValidDays,
		GeneratedBy: admin.ID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.RecordAccessCodeEvent("generated")
	h.logger.Info("access code generated",
		slog.String("code_id", accessCode.ID.String()),
		slog.String("generated_by", admin.Email),
		slog.Time("expires_at", accessCode.ExpiresAt),
		slog.Any("permissions", []string(accessCode.Permissions)),
	)

	response.OK(c, generateResponse{
		Code:        accessCode.Code,
		ExpiresAt:   accessCode.ExpiresAt,
		Permissions: accessCode.Permissions,
	})
}

// List returns every generated code.
func (h *Handler) List(c *gin.Context) {
	codes, err := List(h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.JSONNoStore(c, http.StatusOK, codes)
}

// Validate checks a code without consuming it.
func (h *Handler) Validate(c *gin.Context) {
	accessCode, err := Validate(h.db.WithContext(c.Request.Context()), c.Param("code"))
	if err != nil {
		metrics.RecordAccessCodeEvent("rejected")
		h.respondError(c, err)
		return
	}

	metrics.RecordAccessCodeEvent("validated")
	response.OK(c, gin.H{
		"valid":       true,
		"permissions": []string(accessCode.Permissions),
		"expiresAt":   accessCode.ExpiresAt,
	})
}

type redeemRequest struct {
	Code     string `json:"code" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Redeem creates a staff account from a code and signs it in.
func (h *Handler) Redeem(c *gin.Context) {
	var req redeemRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	result, err := Redeem(h.db.WithContext(c.Request.Context()), RedeemInput{
		Code:     req.Code,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, h.tokens)
	if err != nil {
		metrics.RecordAccessCodeEvent("rejected")
		h.respondError(c, err)
		return
	}

	metrics.RecordAccessCodeEvent("redeemed")
	h.logger.Info("access code redeemed",
		slog.String("staff_id", result.User.ID.String()),
		slog.String("email", result.User.Email),
	)
	response.OK(c, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Access code not found", err)
	case errors.Is(err, ErrCodeUsed):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Access code already used", err)
	case errors.Is(err, ErrCodeExpired):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Access code expired", err)
	case errors.Is(err, user.ErrEmailTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Email already registered", err)
	case errors.Is(err, ErrInvalidValidDays),
		errors.Is(err, user.ErrUnknownPermission),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidUsername),
		errors.Is(err, user.ErrInvalidPassword):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
