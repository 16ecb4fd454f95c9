package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// EnsureDefaultAdmin creates or synchronizes the configured administrator.
// Nothing happens when no admin email is configured.
func EnsureDefaultAdmin(db *gorm.DB, cfg config.AdminConfig, logger *slog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		logger.Info("default admin skipped - LANGSWAP_ADMIN_EMAIL not set")
		return nil
	}

	var existing user.User
	err := db.Where("LOWER(email) = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, createErr := user.Create(db, user.CreateInput{
			Email:    email,
			Username: cfg.Username,
			Password: cfg.Password,
			Role:     types.RoleAdmin,
		})
		if createErr != nil {
			if isUndefinedTableError(createErr) {
				logger.Warn("default admin skipped - users table missing", slog.String("email", email))
				return nil
			}
			return fmt.Errorf("create admin: %w", createErr)
		}

		logger.Info("default admin created", slog.String("email", email))
		return nil

	case err != nil:
		if isUndefinedTableError(err) {
			logger.Warn("default admin skipped - users table missing", slog.String("email", email))
			return nil
		}
		return fmt.Errorf("get admin: %w", err)
	}

	updates := map[string]interface{}{}

	if !existing.ComparePassword(cfg.Password) {
		hashed, hashErr := user.HashPassword(cfg.Password)
		if hashErr != nil {
			return fmt.Errorf("hash admin password: %w", hashErr)
		}
		updates["password"] = hashed
	}

	if existing.Role != types.RoleAdmin {
		updates["role"] = types.RoleAdmin
	}

	if !existing.Active {
		updates["is_active"] = true
	}

	if len(updates) == 0 {
		logger.Info("default admin already up to date", slog.String("email", email))
		return nil
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	logger.Info("default admin synchronized", slog.String("email", email))
	return nil
}

func isUndefinedTableError(err error) bool {
	if err == nil {
		return false
	}

	message := err.Error()
	return strings.Contains(message, "relation \"users\" does not exist") ||
		strings.Contains(message, "no such table: users")
}
