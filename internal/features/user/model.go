package user

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/types"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
	maxPasswordLength = 72
)

// User represents an account.
type User struct {
	types.BaseModel

	Email       string                      `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Username    string                      `gorm:"type:varchar(50);not null" json:"username"`
	Password    string                      `gorm:"type:varchar(255);not null" json:"-"`
	Role        types.Role                  `gorm:"type:varchar(20);not null;index" json:"role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	Active      bool                        `gorm:"not null;column:is_active" json:"isActive"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        types.Role `json:"role"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToResponse strips credentials and normalises empty permission sets.
func (u User) ToResponse() UserResponse {
	permissions := []string(u.Permissions)
	if permissions == nil {
		permissions = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: permissions,
		IsActive:    u.Active,
		CreatedAt:   u.CreatedAt,
	}
}

// CreateInput carries data for creating a new user.
type CreateInput struct {
	Email       string
	Username    string
	Password    string
	Role        types.Role
	Permissions []string
}

// Create validates input, hashes the password and inserts the account.
func Create(db *gorm.DB, input CreateInput) (User, error) {
	email, err := validation.NormalizeEmail(input.Email)
	if err != nil {
		return User{}, ErrInvalidEmail
	}

	username := strings.TrimSpace(input.Username)
	if n := utf8.RuneCountInString(username); n < 2 || n > 50 {
		return User{}, ErrInvalidUsername
	}

	if n := len(input.Password); n < minPasswordLength || n > maxPasswordLength {
		return User{}, ErrInvalidPassword
	}

	role := input.Role
	if role == "" {
		role = types.RoleUser
	}
	if !role.Valid() {
		return User{}, ErrInvalidRole
	}

	permissions, err := NormalizePermissions(input.Permissions)
	if err != nil {
		return User{}, err
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		Email:       email,
		Username:    username,
		Password:    hashedPassword,
		Role:        role,
		Permissions: permissions,
		Active:      true,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uuid.UUID) (User, error) {
	var user User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func GetByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	if err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// ListByRole returns accounts holding role, newest first.
func ListByRole(db *gorm.DB, role types.Role) ([]User, error) {
	var users []User
	if err := db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteStaff removes a staff account. Other roles are reported as not found.
func DeleteStaff(db *gorm.DB, id uuid.UUID) error {
	result := db.Where("role = ?", types.RoleStaff).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetActive activates or deactivates an account.
func SetActive(db *gorm.DB, id uuid.UUID, active bool) (User, error) {
	result := db.Model(&User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return Get(db, id)
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// ComparePassword checks if the provided password matches the user's hashed password.
func (u *User) ComparePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// NormalizePermissions trims, de-duplicates and sorts permissions, rejecting unknown ones.
func NormalizePermissions(permissions []string) (datatypes.JSONSlice[string], error) {
	seen := make(map[string]struct{}, len(permissions))
	out := make([]string, 0, len(permissions))
	for _, p := range permissions {
		p = strings.TrimSpace(p)
		if !types.IsKnownPermission(p) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, p)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return datatypes.JSONSlice[string](out), nil
}
