package types

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role represents account role levels
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// LanguageMode selects which direction a lesson teaches.
type LanguageMode string

const (
	LanguageModeLearnThai    LanguageMode = "learn-thai"
	LanguageModeLearnEnglish LanguageMode = "learn-english"
)

// Valid reports whether m is a known language mode.
func (m LanguageMode) Valid() bool {
	return m == LanguageModeLearnThai || m == LanguageModeLearnEnglish
}

// PlanType represents a purchasable subscription plan.
type PlanType string

const (
	PlanMonthly  PlanType = "monthly"
	PlanLifetime PlanType = "lifetime"
)

// Permission strings granted to staff accounts.
const (
	PermissionLessonsRead   = "lessons:read"
	PermissionLessonsWrite  = "lessons:write"
	PermissionProgressRead  = "progress:read"
	PermissionCouponsManage = "coupons:manage"
	PermissionUsersRead     = "users:read"
)

// KnownPermissions lists every permission a staff account may hold.
var KnownPermissions = []string{
	PermissionLessonsRead,
	PermissionLessonsWrite,
	PermissionProgressRead,
	PermissionCouponsManage,
	PermissionUsersRead,
}

// DefaultStaffPermissions is granted when an access code is generated without an explicit set.
var DefaultStaffPermissions = []string{
	PermissionLessonsRead,
	PermissionLessonsWrite,
	PermissionProgressRead,
}

// IsKnownPermission reports whether p is in KnownPermissions.
func IsKnownPermission(p string) bool {
	for _, known := range KnownPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// BeforeCreate assigns a random id so inserts do not depend on database-side uuid functions.
func (m *BaseModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Money wraps decimal.Decimal for money values
type Money decimal.Decimal

// NewMoney creates Money from float64
func NewMoney(value float64) Money {
	return Money(decimal.NewFromFloat(value))
}

// NewMoneyFromString creates Money from string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money(d), nil
}

// MustMoney parses a literal price and panics on malformed input.
func MustMoney(value string) Money {
	m, err := NewMoneyFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// Float64 returns the float64 representation
func (m Money) Float64() float64 {
	return decimal.Decimal(m).InexactFloat64()
}

// String returns string representation
func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

// ApplyDiscount returns m reduced by percent and rounded to cents.
func (m Money) ApplyDiscount(percent int) Money {
	if percent <= 0 {
		return m
	}
	factor := decimal.NewFromInt(100 - int64(percent)).Div(decimal.NewFromInt(100))
	return Money(decimal.Decimal(m).Mul(factor).Round(2))
}

// Equal reports whether both amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return decimal.Decimal(m).Equal(decimal.Decimal(other))
}

// IsZero returns true if value is zero
func (m Money) IsZero() bool {
	return decimal.Decimal(m).IsZero()
}

// Value implements driver.Valuer for database serialization
func (m Money) Value() (driver.Value, error) {
	return decimal.Decimal(m).Value()
}

// Scan implements sql.Scanner for database deserialization
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}
