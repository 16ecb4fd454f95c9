package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
	accessCodeRegex = regexp.MustCompile(`^[0-9A-Z]{4}-[0-9A-Z]{4}-[0-9A-Z]{4}$`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizeCouponCode upper-cases a coupon code and validates its format.
// Valid codes are 3-32 characters of letters, digits, hyphens and underscores.
func NormalizeCouponCode(value string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !couponCodeRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid coupon code. Use 3-32 characters (letters, numbers, hyphens, underscores)")
	}
	return normalized, nil
}

// NormalizeAccessCode upper-cases an access code. Codes look like ABCD-EFGH-JKMN.
func NormalizeAccessCode(value string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !accessCodeRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid access code format")
	}
	return normalized, nil
}

// NormalizeEmail lower-cases an email address and checks its basic shape.
func NormalizeEmail(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid email format")
	}
	return normalized, nil
}
