package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// Handler serves staff administration endpoints.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a user handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type createStaffRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Username    string   `json:"username" binding:"required,min=2,max=50"`
	Password    string   `json:"password" binding:"required,min=8,max=72"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,permission"`
}

// CreateStaff creates a staff account directly, without an access code.
func (h *Handler) CreateStaff(c *gin.Context) {
	var req createStaffRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	permissions := req.Permissions
	if len(permissions) == 0 {
		permissions = types.DefaultStaffPermissions
	}

	staff, err := Create(h.db.WithContext(c.Request.Context()), CreateInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Role:        types.RoleStaff,
		Permissions: permissions,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	admin, _ := middleware.GetUserFromContext(c)
	h.logger.Info("staff account created",
		slog.String("staff_id", staff.ID.String()),
		slog.String("email", staff.Email),
		slog.String("created_by", admin.Email),
	)

	response.OK(c, staff.ToResponse())
}

// ListStaff returns every staff account.
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := ListByRole(h.db.WithContext(c.Request.Context()), types.RoleStaff)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make([]UserResponse, 0, len(staff))
	for _, u := range staff {
		out = append(out, u.ToResponse())
	}
	response.OK(c, out)
}

// DeleteStaff removes a staff account.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, err := request.UUIDParam(c, "userId")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	if err := DeleteStaff(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("staff account deleted", slog.String("staff_id", id.String()))
	response.OK(c, gin.H{"success": true, "message": "Staff member deleted"})
}

type updateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateStatus activates or deactivates an account.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := request.UUIDParam(c, "userId")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	var req updateStatusRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	admin, _ := middleware.GetUserFromContext(c)
	if admin.ID == id && !*req.IsActive {
		h.respondError(c, ErrCannotDeactivateSelf)
		return
	}

	updated, err := SetActive(h.db.WithContext(c.Request.Context()), id, *req.IsActive)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("account status changed",
		slog.String("user_id", id.String()),
		slog.Bool("active", updated.Active),
	)
	response.OK(c, updated.ToResponse())
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, ErrEmailTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Email already registered", err)
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrUnknownPermission),
		errors.Is(err, ErrCannotDeactivateSelf):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
