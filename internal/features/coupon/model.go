package coupon

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/types"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

// Coupon grants a percentage discount on a subscription, a limited number of times.
type Coupon struct {
	types.BaseModel

	Code            string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	DiscountPercent int       `gorm:"not null;column:discount_percent" json:"discountPercent"`
	ValidUntil      time.Time `gorm:"not null;column:valid_until" json:"validUntil"`
	MaxUses         int       `gorm:"not null;column:max_uses" json:"maxUses"`
	UsedCount       int       `gorm:"not null;column:used_count" json:"usedCount"`
	Active          bool      `gorm:"not null;column:is_active" json:"isActive"`
}

// TableName overrides the default table name.
func (Coupon) TableName() string { return "coupons" }

// CreateInput carries data for a new coupon.
type CreateInput struct {
	Code            string
	DiscountPercent int
	ValidUntil      time.Time
	MaxUses         int
}

// Create validates and stores an active, unused coupon. Codes are upper-cased.
func Create(db *gorm.DB, input CreateInput) (Coupon, error) {
	code, err := validation.NormalizeCouponCode(input.Code)
	if err != nil {
		return Coupon{}, ErrInvalidCode
	}
	if input.DiscountPercent < 1 || input.DiscountPercent > 100 {
		return Coupon{}, ErrInvalidDiscount
	}
	if input.MaxUses < 1 {
		return Coupon{}, ErrInvalidMaxUses
	}
	if !input.ValidUntil.After(db.NowFunc()) {
		return Coupon{}, ErrInvalidValidUntil
	}

	coupon := Coupon{
		Code:            code,
		DiscountPercent: input.DiscountPercent,
		ValidUntil:      input.ValidUntil.UTC(),
		MaxUses:         input.MaxUses,
		Active:          true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Coupon{}, ErrCodeTaken
		}
		return Coupon{}, err
	}
	return coupon, nil
}

// Get retrieves a coupon by code, case-insensitively.
func Get(db *gorm.DB, code string) (Coupon, error) {
	normalized, err := validation.NormalizeCouponCode(code)
	if err != nil {
		return Coupon{}, ErrCouponNotFound
	}

	var coupon Coupon
	if err := db.First(&coupon, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Coupon{}, ErrCouponNotFound
		}
		return Coupon{}, err
	}
	return coupon, nil
}

// List returns every coupon, newest first.
func List(db *gorm.DB) ([]Coupon, error) {
	coupons := make([]Coupon, 0)
	if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Deactivate disables a coupon. Usage history is kept.
func Deactivate(db *gorm.DB, code string) (Coupon, error) {
	coupon, err := Get(db, code)
	if err != nil {
		return Coupon{}, err
	}
	if err := db.Model(&coupon).Update("is_active", false).Error; err != nil {
		return Coupon{}, err
	}
	coupon.Active = false
	return coupon, nil
}

// Validate reports whether the coupon can be applied at now.
func Validate(db *gorm.DB, code string, now time.Time) (Coupon, error) {
	coupon, err := Get(db, code)
	if err != nil {
		return Coupon{}, err
	}
	if err := coupon.Usable(now); err != nil {
		return Coupon{}, err
	}
	return coupon, nil
}

// Usable reports why the coupon cannot be applied at now, or nil.
func (c Coupon) Usable(now time.Time) error {
	switch {
	case !c.Active:
		return ErrCouponInactive
	case c.UsedCount >= c.MaxUses:
		return ErrCouponExhausted
	case !now.Before(c.ValidUntil):
		return ErrCouponExpired
	}
	return nil
}

// Redeem consumes one use of the coupon. The increment is a single conditional
// update, so concurrent redemptions never push usedCount past maxUses.
func Redeem(db *gorm.DB, code string, now time.Time) (Coupon, error) {
	normalized, err := validation.NormalizeCouponCode(code)
	if err != nil {
		return Coupon{}, ErrCouponNotFound
	}

	result := db.Model(&Coupon{}).
		Where("code = ? AND is_active = ? AND used_count < max_uses AND valid_until > ?", normalized, true, now).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return Coupon{}, result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := Validate(db, normalized, now); err != nil {
			return Coupon{}, err
		}
		return Coupon{}, ErrCouponExhausted
	}

	return Get(db, normalized)
}
