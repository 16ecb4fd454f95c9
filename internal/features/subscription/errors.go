package subscription

import "errors"

var (
	ErrInvalidPlan          = errors.New("planType must be monthly or lifetime")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
