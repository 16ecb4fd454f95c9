package coupon

import "errors"

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCodeTaken         = errors.New("coupon code already exists")
	ErrInvalidCode       = errors.New("invalid coupon code. Use 3-32 characters (letters, numbers, hyphens, underscores)")
	ErrInvalidDiscount   = errors.New("discountPercent must be between 1 and 100")
	ErrInvalidMaxUses    = errors.New("maxUses must be at least 1")
	ErrInvalidValidUntil = errors.New("validUntil must be in the future")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrCouponExpired     = errors.New("coupon has expired")
)
