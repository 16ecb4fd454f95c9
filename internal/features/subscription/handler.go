package subscription

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// Handler processes subscription HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a subscription handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Plans lists purchasable plans.
func (h *Handler) Plans(c *gin.Context) {
	response.OK(c, Plans())
}

type subscribeRequest struct {
	PlanType   types.PlanType `json:"planType" binding:"required,oneof=monthly lifetime"`
	CouponCode string         `json:"couponCode" binding:"omitempty,max=32"`
}

type subscribeResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	Created       bool         `json:"created"`
	CouponApplied bool         `json:"couponApplied"`
	CouponError   string       `json:"couponError,omitempty"`
	Subscription  Subscription `json:"subscription"`
}

// Subscribe purchases a plan for the authenticated user.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	current, _ := middleware.GetUserFromContext(c)
	result, err := Subscribe(h.db.WithContext(c.Request.Context()), SubscribeInput{
		UserID:     current.ID,
		PlanType:   req.PlanType,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := subscribeResponse{
		Success:       true,
		Message:       "Subscription created",
		Created:       result.Created,
		CouponApplied: result.CouponApplied,
		Subscription:  result.Subscription,
	}
	if !result.Created {
		out.Message = "Already subscribed"
	}

	if req.CouponCode != "" && result.Created {
		if result.CouponApplied {
			metrics.RecordCouponRedemption("applied")
		} else {
			metrics.RecordCouponRedemption("rejected")
			out.CouponError = result.CouponError.Error()
		}
	}

	if result.Created {
		h.logger.Info("subscription purchased",
			slog.String("user_id", current.ID.String()),
			slog.String("plan", string(result.Subscription.PlanType)),
			slog.String("price", result.Subscription.Price.String()),
			slog.Bool("coupon_applied", result.CouponApplied),
		)
	}

	response.JSONNoStore(c, http.StatusOK, out)
}

// MySubscription reports the authenticated user's subscription state.
func (h *Handler) MySubscription(c *gin.Context) {
	current, _ := middleware.GetUserFromContext(c)

	db := h.db.WithContext(c.Request.Context())
	status, err := GetForUser(db, current.ID, db.NowFunc())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSONNoStore(c, http.StatusOK, status)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlan):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, ErrSubscriptionNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Subscription not found", err)
	default:
		_ = c.Error(err)
	}
}
