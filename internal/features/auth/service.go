package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/internal/utils/jwt"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse is returned by register, login and access code redemption.
type AuthResponse struct {
	AccessToken string            `json:"accessToken"`
	TokenType   string            `json:"tokenType"`
	User        user.UserResponse `json:"user"`
}

// TokenConfig holds the signing settings for access tokens.
type TokenConfig struct {
	JWTSecret         string
	AccessTokenExpiry time.Duration
}

// Register creates a learner account and signs a token for it.
func Register(db *gorm.DB, input RegisterInput, cfg TokenConfig) (*AuthResponse, error) {
	newUser, err := user.Create(db, user.CreateInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		Role:     types.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return IssueToken(newUser, cfg)
}

// Login verifies credentials. Unknown emails and wrong passwords are indistinguishable.
func Login(db *gorm.DB, input LoginInput, cfg TokenConfig) (*AuthResponse, error) {
	account, err := user.GetByEmail(db, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.ComparePassword(input.Password) {
		return nil, ErrInvalidCredentials
	}

	if !account.Active {
		return nil, ErrInactiveAccount
	}

	return IssueToken(account, cfg)
}

// IssueToken signs an access token whose subject is the account email.
func IssueToken(account user.User, cfg TokenConfig) (*AuthResponse, error) {
	token, err := jwt.GenerateAccessToken(account.Email, string(account.Role), cfg.JWTSecret, cfg.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   jwt.TokenType,
		User:        account.ToResponse(),
	}, nil
}
