package progress

import (
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

const maxListResults = 1000

// Record tracks a learner's completion state for one lesson.
// There is at most one record per (user, lesson) pair.
type Record struct {
	types.BaseModel

	UserID         string                   `gorm:"type:varchar(255);not null;uniqueIndex:idx_progress_user_lesson,priority:1" json:"userId"`
	LessonID       string                   `gorm:"type:varchar(255);not null;uniqueIndex:idx_progress_user_lesson,priority:2" json:"lessonId"`
	Completed      bool                     `gorm:"not null" json:"completed"`
	CompletedItems datatypes.JSONSlice[int] `gorm:"not null" json:"completedItems"`
	LastAccessed   time.Time                `gorm:"not null;column:last_accessed;index" json:"lastAccessed"`
}

// TableName overrides the default table name.
func (Record) TableName() string { return "progress_records" }

// SaveInput carries one progress submission.
type SaveInput struct {
	UserID         string
	LessonID       string
	Completed      bool
	CompletedItems []int
}

// Save upserts the record for the (user, lesson) pair, overwriting the
// completion fields and stamping lastAccessed. modified is 1 when a record
// already existed and 0 when one was inserted.
func Save(db *gorm.DB, input SaveInput) (int64, error) {
	lessonID := strings.TrimSpace(input.LessonID)
	if lessonID == "" {
		return 0, ErrLessonIDRequired
	}

	items, err := normalizeItems(input.CompletedItems)
	if err != nil {
		return 0, err
	}

	now := db.NowFunc()
	record := Record{
		UserID:         strings.TrimSpace(input.UserID),
		LessonID:       lessonID,
		Completed:      input.Completed,
		CompletedItems: items,
		LastAccessed:   now,
	}

	var modified int64
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&Record{}).
			Where("user_id = ? AND lesson_id = ?", record.UserID, record.LessonID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			modified = 1
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_items", "last_accessed", "updated_at"}),
		}).Create(&record).Error
	})
	if err != nil {
		return 0, err
	}

	return modified, nil
}

// Get returns the record for a (user, lesson) pair.
func Get(db *gorm.DB, userID, lessonID string) (Record, error) {
	var record Record
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&record).Error
	return record, err
}

// ListByUser returns every record of a user, most recently accessed first.
func ListByUser(db *gorm.DB, userID string) ([]Record, error) {
	records := make([]Record, 0)
	err := db.Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Limit(maxListResults).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAll removes every progress record.
func DeleteAll(db *gorm.DB) (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{})
	return result.RowsAffected, result.Error
}

// normalizeItems treats completed items as a set: sorted, without duplicates.
func normalizeItems(items []int) (datatypes.JSONSlice[int], error) {
	out := make([]int, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, idx := range items {
		if idx < 0 {
			return nil, ErrNegativeItem
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	sort.Ints(out)
	return datatypes.JSONSlice[int](out), nil
}
