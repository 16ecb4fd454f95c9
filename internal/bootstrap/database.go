package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/accesscode"
	"github.com/mo-amir99/langswap-server-go/internal/features/coupon"
	"github.com/mo-amir99/langswap-server-go/internal/features/favorite"
	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/internal/features/progress"
	"github.com/mo-amir99/langswap-server-go/internal/features/subscription"
	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/database/migrations"
)

func init() {
	migrations.Register("schema", AutoMigrate)
}

// Models lists every persisted entity in creation order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&lesson.Lesson{},
		&progress.Record{},
		&favorite.Record{},
		&accesscode.AccessCode{},
		&coupon.Coupon{},
		&subscription.Subscription{},
	}
}

// AutoMigrate creates or updates tables, columns and indexes for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// ApplyDatabaseMigrations runs database migrations when enabled via configuration.
func ApplyDatabaseMigrations(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Database.RunMigrations {
		logger.Info("database migrations skipped", slog.String("env_var", "LANGSWAP_DB_RUN_MIGRATIONS=false"))
		return nil
	}

	if err := migrations.Run(db, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("database migrations applied successfully")
	return nil
}
