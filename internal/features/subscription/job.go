package subscription

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// ExpirationJob periodically deactivates lapsed monthly subscriptions.
type ExpirationJob struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewExpirationJob creates the sweep job.
func NewExpirationJob(db *gorm.DB, logger *slog.Logger) *ExpirationJob {
	return &ExpirationJob{db: db, logger: logger}
}

// Name returns the job name.
func (j *ExpirationJob) Name() string {
	return "subscription_expiration"
}

// Execute runs one sweep.
func (j *ExpirationJob) Execute(ctx context.Context) error {
	db := j.db.WithContext(ctx)
	count, err := ExpireLapsed(db, db.NowFunc())
	if err != nil {
		return err
	}
	if count > 0 {
		j.logger.Info("deactivated expired subscriptions", slog.Int64("count", count))
	}
	return nil
}
