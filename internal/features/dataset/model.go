package dataset

import (
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/favorite"
	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/internal/features/progress"
)

// InitResult reports the outcome of Init.
type InitResult struct {
	Seeded bool
	Count  int64
}

// ClearResult counts the rows removed by Clear.
type ClearResult struct {
	Lessons   int64
	Progress  int64
	Favorites int64
}

// Init loads the bundled catalog. An already populated catalog is left alone
// unless force is set, in which case it is replaced.
func Init(db *gorm.DB, force bool) (InitResult, error) {
	count, err := lesson.Count(db)
	if err != nil {
		return InitResult{}, err
	}
	if count > 0 && !force {
		return InitResult{Count: count}, nil
	}

	seed, err := lesson.SeedLessons()
	if err != nil {
		return InitResult{}, err
	}
	if err := lesson.ReplaceAll(db, seed); err != nil {
		return InitResult{}, err
	}

	return InitResult{Seeded: true, Count: int64(len(seed))}, nil
}

// Clear removes lessons, progress and favorites together.
func Clear(db *gorm.DB) (ClearResult, error) {
	var result ClearResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if result.Lessons, err = lesson.DeleteAll(tx); err != nil {
			return err
		}
		if result.Progress, err = progress.DeleteAll(tx); err != nil {
			return err
		}
		result.Favorites, err = favorite.DeleteAll(tx)
		return err
	})
	if err != nil {
		return ClearResult{}, err
	}
	return result, nil
}
