package subscription

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/coupon"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// Subscription is a purchased plan. Monthly plans lapse at ExpiresAt; lifetime
// plans never expire.
type Subscription struct {
	types.BaseModel

	UserID      uuid.UUID      `gorm:"type:uuid;not null;column:user_id;index:idx_subscription_user_purchased,priority:1" json:"userId"`
	PlanType    types.PlanType `gorm:"type:varchar(20);not null;column:plan_type" json:"planType"`
	Price       types.Money    `gorm:"type:numeric(10,2);not null" json:"price"`
	CouponCode  *string        `gorm:"type:varchar(32);column:coupon_code" json:"couponCode,omitempty"`
	Active      bool           `gorm:"not null;column:is_active" json:"isActive"`
	PurchasedAt time.Time      `gorm:"not null;column:purchased_at;index:idx_subscription_user_purchased,priority:2" json:"purchasedAt"`
	ExpiresAt   *time.Time     `gorm:"column:expires_at" json:"expiresAt"`
}

// TableName overrides the default table name.
func (Subscription) TableName() string { return "subscriptions" }

// IsExpired reports whether a monthly subscription has passed its end time.
func (s Subscription) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// SubscribeInput carries a purchase request.
type SubscribeInput struct {
	UserID     uuid.UUID
	PlanType   types.PlanType
	CouponCode string
}

// SubscribeResult describes the outcome of Subscribe.
type SubscribeResult struct {
	Subscription  Subscription
	Created       bool
	CouponApplied bool
	CouponError   error
}

// Status is the answer to "does this user have premium access".
type Status struct {
	HasSubscription bool          `json:"hasSubscription"`
	IsPremium       bool          `json:"isPremium"`
	Subscription    *Subscription `json:"subscription,omitempty"`
}

// Subscribe buys a plan for the user. A user who already holds an active
// subscription gets it back unchanged. A coupon that cannot be applied leaves
// the base price and is reported in CouponError.
func Subscribe(db *gorm.DB, input SubscribeInput) (SubscribeResult, error) {
	plan, ok := LookupPlan(input.PlanType)
	if !ok {
		return SubscribeResult{}, ErrInvalidPlan
	}

	var result SubscribeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()

		existing, err := findActive(tx, input.UserID, now)
		if err == nil {
			result = SubscribeResult{Subscription: existing}
			return nil
		}
		if !errors.Is(err, ErrSubscriptionNotFound) {
			return err
		}

		sub := Subscription{
			UserID:      input.UserID,
			PlanType:    plan.Type,
			Price:       plan.Price,
			Active:      true,
			PurchasedAt: now,
		}
		if plan.DurationDays != nil {
			expires := now.AddDate(0, 0, *plan.DurationDays)
			sub.ExpiresAt = &expires
		}

		if code := strings.TrimSpace(input.CouponCode); code != "" {
			applied, err := coupon.Redeem(tx, code, now)
			switch {
			case err == nil:
				sub.Price = plan.Price.ApplyDiscount(applied.DiscountPercent)
				sub.CouponCode = &applied.Code
				result.CouponApplied = true
			case isCouponRejection(err):
				result.CouponError = err
			default:
				return err
			}
		}

		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		result.Subscription = sub
		result.Created = true
		return nil
	})
	if err != nil {
		return SubscribeResult{}, err
	}

	return result, nil
}

// GetForUser returns the user's latest subscription. A monthly subscription
// found past its end is marked inactive in the store before answering.
func GetForUser(db *gorm.DB, userID uuid.UUID, now time.Time) (Status, error) {
	var sub Subscription
	err := db.Where("user_id = ?", userID).Order("purchased_at DESC").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}

	if sub.Active && sub.IsExpired(now) {
		if err := db.Model(&sub).Update("is_active", false).Error; err != nil {
			return Status{}, err
		}
		sub.Active = false
	}

	return Status{HasSubscription: true, IsPremium: sub.Active, Subscription: &sub}, nil
}

func findActive(db *gorm.DB, userID uuid.UUID, now time.Time) (Subscription, error) {
	var sub Subscription
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("purchased_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Subscription{}, ErrSubscriptionNotFound
	}
	return sub, err
}

func isCouponRejection(err error) bool {
	return errors.Is(err, coupon.ErrCouponNotFound) ||
		errors.Is(err, coupon.ErrCouponInactive) ||
		errors.Is(err, coupon.ErrCouponExhausted) ||
		errors.Is(err, coupon.ErrCouponExpired)
}

// ExpireLapsed deactivates every active subscription whose end time has passed.
func ExpireLapsed(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&Subscription{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
