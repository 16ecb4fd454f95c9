package coupon

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes coupon HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a coupon handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type createRequest struct {
	Code            string    `json:"code" binding:"required,couponcode"`
	DiscountPercent int       `json:"discountPercent" binding:"required,min=1,max=100"`
	ValidUntil      time.Time `json:"validUntil" binding:"required"`
	MaxUses         int       `json:"maxUses" binding:"required,min=1"`
}

// Create adds a coupon.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	coupon, err := Create(h.db.WithContext(c.Request.Context()), CreateInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ValidUntil:      req.ValidUntil,
		MaxUses:         req.MaxUses,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	admin, _ := middleware.GetUserFromContext(c)
	h.logger.Info("coupon created",
		slog.String("code", coupon.Code),
		slog.Int("discount_percent", coupon.DiscountPercent),
		slog.Int("max_uses", coupon.MaxUses),
		slog.String("created_by", admin.Email),
	)
	response.OK(c, coupon)
}

// List returns every coupon.
func (h *Handler) List(c *gin.Context) {
	coupons, err := List(h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.JSONNoStore(c, http.StatusOK, coupons)
}

// Deactivate disables a coupon.
func (h *Handler) Deactivate(c *gin.Context) {
	coupon, err := Deactivate(h.db.WithContext(c.Request.Context()), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("coupon deactivated", slog.String("code", coupon.Code))
	response.OK(c, coupon)
}

// Validate checks a coupon without consuming it.
func (h *Handler) Validate(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	coupon, err := Validate(db, c.Param("code"), db.NowFunc())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, gin.H{"valid": true, "discountPercent": coupon.DiscountPercent})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCouponNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Coupon not found", err)
	case errors.Is(err, ErrCodeTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Coupon code already exists", err)
	case errors.Is(err, ErrCouponInactive),
		errors.Is(err, ErrCouponExhausted),
		errors.Is(err, ErrCouponExpired):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidMaxUses),
		errors.Is(err, ErrInvalidValidUntil):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
