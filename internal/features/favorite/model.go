package favorite

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

const maxListResults = 1000

// Toggle outcomes.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// Record marks one lesson item as a favorite of a user. ItemData is a copy of
// the item taken when it was favorited.
type Record struct {
	types.BaseModel

	UserID    string                                `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorite_key,priority:1" json:"userId"`
	LessonID  string                                `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorite_key,priority:2" json:"lessonId"`
	ItemIndex int                                   `gorm:"not null;uniqueIndex:idx_favorite_key,priority:3" json:"itemIndex"`
	ItemData  datatypes.JSONType[lesson.LessonItem] `gorm:"not null" json:"itemData"`
}

// TableName overrides the default table name.
func (Record) TableName() string { return "favorite_records" }

// ToggleInput identifies the item to toggle.
type ToggleInput struct {
	UserID    string
	LessonID  string
	ItemIndex int
	ItemData  *lesson.LessonItem
}

// ToggleResult reports what a toggle did. ID is set when the item is now a favorite.
type ToggleResult struct {
	Action string     `json:"action"`
	ID     *uuid.UUID `json:"id,omitempty"`
}

// Toggle removes the favorite when it exists and adds it otherwise.
// Two concurrent adds of the same key both report "added" with the same id.
func Toggle(db *gorm.DB, input ToggleInput) (ToggleResult, error) {
	lessonID := strings.TrimSpace(input.LessonID)
	if lessonID == "" {
		return ToggleResult{}, ErrLessonIDRequired
	}
	if input.ItemIndex < 0 {
		return ToggleResult{}, ErrNegativeIndex
	}
	userID := strings.TrimSpace(input.UserID)

	var result ToggleResult
	err := db.Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("user_id = ? AND lesson_id = ? AND item_index = ?", userID, lessonID, input.ItemIndex).
			Delete(&Record{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected > 0 {
			result = ToggleResult{Action: ActionRemoved}
			return nil
		}

		if input.ItemData == nil {
			return ErrItemDataRequired
		}

		record := Record{
			UserID:    userID,
			LessonID:  lessonID,
			ItemIndex: input.ItemIndex,
			ItemData:  datatypes.NewJSONType(*input.ItemData),
		}
		inserted := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if inserted.Error != nil {
			return inserted.Error
		}

		id := record.ID
		if inserted.RowsAffected == 0 {
			var existing Record
			if err := tx.Select("id").
				Where("user_id = ? AND lesson_id = ? AND item_index = ?", userID, lessonID, input.ItemIndex).
				First(&existing).Error; err != nil {
				return err
			}
			id = existing.ID
		}
		result = ToggleResult{Action: ActionAdded, ID: &id}
		return nil
	})
	if err != nil {
		return ToggleResult{}, err
	}

	return result, nil
}

// ListByUser returns a user's favorites, newest first.
func ListByUser(db *gorm.DB, userID string) ([]Record, error) {
	records := make([]Record, 0)
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(maxListResults).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAll removes every favorite.
func DeleteAll(db *gorm.DB) (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{})
	return result.RowsAffected, result.Error
}
