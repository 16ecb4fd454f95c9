package accesscode

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/auth"
	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

const (
	defaultValidDays = 7
	maxValidDays     = 365
	maxGenerateTries = 3
)

// AccessCode is a single-use invitation that creates a staff account.
type AccessCode struct {
	types.BaseModel

	Code        string                      `gorm:"type:varchar(14);not null;uniqueIndex" json:"code"`
	GeneratedBy uuid.UUID                   `gorm:"type:uuid;not null;column:generated_by;index" json:"generatedBy"`
	GeneratedAt time.Time                   `gorm:"not null;column:generated_at" json:"generatedAt"`
	ExpiresAt   time.Time                   `gorm:"not null;column:expires_at" json:"expiresAt"`
	Used        bool                        `gorm:"not null;column:is_used" json:"isUsed"`
	UsedBy      *uuid.UUID                  `gorm:"type:uuid;column:used_by" json:"usedBy,omitempty"`
	UsedAt      *time.Time                  `gorm:"column:used_at" json:"usedAt,omitempty"`
	Permissions datatypes.JSONSlice[string] `gorm:"not null" json:"permissions"`
}

// TableName overrides the default table name.
func (AccessCode) TableName() string { return "access_codes" }

// GenerateInput carries the parameters of a new code.
type GenerateInput struct {
	Permissions []string
	ValidDays   int
	GeneratedBy uuid.UUID
}

// RedeemInput carries the account to create with a code.
type RedeemInput struct {
	Code     string
	Email    string
	Username string
	Password string
}

// Generate creates an unused code. An empty permission set grants the
// default staff permissions; ValidDays of zero means a week.
func Generate(db *gorm.DB, input GenerateInput) (AccessCode, error) {
	validDays := input.ValidDays
	if validDays == 0 {
		validDays = defaultValidDays
	}
	if validDays < 1 || validDays > maxValidDays {
		return AccessCode{}, ErrInvalidValidDays
	}

	requested := input.Permissions
	if len(requested) == 0 {
		requested = types.DefaultStaffPermissions
	}
	permissions, err := user.NormalizePermissions(requested)
	if err != nil {
		return AccessCode{}, err
	}

	now := db.NowFunc()
	for attempt := 0; attempt < maxGenerateTries; attempt++ {
		code, err := generateCode()
		if err != nil {
			return AccessCode{}, err
		}

		accessCode := AccessCode{
			Code:        code,
			GeneratedBy: input.GeneratedBy,
			GeneratedAt: now,
			ExpiresAt:   now.AddDate(0, 0, validDays),
			Permissions: permissions,
		}
		err = db.Create(&accessCode).Error
		if err == nil {
			return accessCode, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return AccessCode{}, err
		}
	}

	return AccessCode{}, ErrCodeExhausted
}

// Validate reports whether code could be redeemed right now.
func Validate(db *gorm.DB, code string) (AccessCode, error) {
	accessCode, err := find(db, code)
	if err != nil {
		return AccessCode{}, err
	}
	if err := checkRedeemable(accessCode, db.NowFunc()); err != nil {
		return AccessCode{}, err
	}
	return accessCode, nil
}

// Redeem consumes the code and creates a staff account holding its permissions.
// Claiming the code and creating the account commit together or not at all.
func Redeem(db *gorm.DB, input RedeemInput, tokens auth.TokenConfig) (*auth.AuthResponse, error) {
	var result *auth.AuthResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		code, err := validation.NormalizeAccessCode(input.Code)
		if err != nil {
			return ErrCodeNotFound
		}

		now := tx.NowFunc()
		claimed := tx.Model(&AccessCode{}).
			Where("code = ? AND is_used = ? AND expires_at > ?", code, false, now).
			Updates(map[string]interface{}{"is_used": true, "used_at": now})
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			accessCode, err := find(tx, code)
			if err != nil {
				return err
			}
			if err := checkRedeemable(accessCode, now); err != nil {
				return err
			}
			return ErrCodeUsed
		}

		accessCode, err := find(tx, code)
		if err != nil {
			return err
		}

		staff, err := user.Create(tx, user.CreateInput{
			Email:       input.Email,
			Username:    input.Username,
			Password:    input.Password,
			Role:        types.RoleStaff,
			Permissions: accessCode.Permissions,
		})
		if err != nil {
			return err
		}

		if err := tx.Model(&AccessCode{}).Where("id = ?", accessCode.ID).Update("used_by", staff.ID).Error; err != nil {
			return err
		}

		result, err = auth.IssueToken(staff, tokens)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// List returns every code, newest first.
func List(db *gorm.DB) ([]AccessCode, error) {
	codes := make([]AccessCode, 0)
	if err := db.Order("generated_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func find(db *gorm.DB, code string) (AccessCode, error) {
	normalized, err := validation.NormalizeAccessCode(code)
	if err != nil {
		return AccessCode{}, ErrCodeNotFound
	}

	var accessCode AccessCode
	if err := db.First(&accessCode, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessCode{}, ErrCodeNotFound
		}
		return AccessCode{}, err
	}
	return accessCode, nil
}

func checkRedeemable(accessCode AccessCode, now time.Time) error {
	if accessCode.Used {
		return ErrCodeUsed
	}
	if !now.Before(accessCode.ExpiresAt) {
		return ErrCodeExpired
	}
	return nil
}
