package lesson

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// MaxListResults caps a catalog listing. The catalog is not paginated.
const MaxListResults = 1000

//go:embed seed/lessons.json
var seedLessons []byte

// LessonItem is one flashcard. Its position inside Lesson.Items is the item index
// referenced by progress and favorites.
type LessonItem struct {
	TargetText   string  `json:"targetText"`
	Romanization string  `json:"romanization"`
	Translation  string  `json:"translation"`
	Example      *string `json:"example,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// Lesson is an ordered set of flashcards.
type Lesson struct {
	types.BaseModel

	Title        string                          `gorm:"type:varchar(200);not null" json:"title"`
	Category     string                          `gorm:"type:varchar(100);not null;index" json:"category"`
	Subcategory  *string                         `gorm:"type:varchar(100)" json:"subcategory,omitempty"`
	Description  string                          `gorm:"type:text;not null" json:"description"`
	Items        datatypes.JSONSlice[LessonItem] `gorm:"not null" json:"items"`
	Order        int                             `gorm:"column:order;not null;index" json:"order"`
	LanguageMode types.LanguageMode              `gorm:"type:varchar(20);not null;index" json:"languageMode"`
	ThumbnailURL *string                         `gorm:"type:varchar(500);column:thumbnail_url" json:"thumbnailUrl,omitempty"`
}

// TableName overrides the default table name.
func (Lesson) TableName() string { return "lessons" }

// ListFilters narrows a catalog listing. Empty fields do not constrain.
type ListFilters struct {
	Category     string
	LanguageMode types.LanguageMode
}

// List returns lessons matching filters, sorted by display order then title.
func List(db *gorm.DB, filters ListFilters) ([]Lesson, error) {
	query := db.Model(&Lesson{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.LanguageMode != "" {
		query = query.Where("language_mode = ?", filters.LanguageMode)
	}

	lessons := make([]Lesson, 0)
	err := query.
		Order("\"order\" ASC, title ASC").
		Limit(MaxListResults).
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	return lessons, nil
}

// Get retrieves a lesson by ID.
func Get(db *gorm.DB, id uuid.UUID) (Lesson, error) {
	var lesson Lesson
	if err := db.First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lesson, ErrLessonNotFound
		}
		return lesson, err
	}
	return lesson, nil
}

// Count returns the number of stored lessons.
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Lesson{}).Count(&count).Error
	return count, err
}

// InsertAll stores lessons in batches. Ids are assigned on insert.
func InsertAll(db *gorm.DB, lessons []Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	return db.CreateInBatches(lessons, 100).Error
}

// ReplaceAll swaps the whole catalog for lessons inside one transaction.
func ReplaceAll(db *gorm.DB, lessons []Lesson) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := DeleteAll(tx); err != nil {
			return err
		}
		return InsertAll(tx, lessons)
	})
}

// DeleteAll removes every lesson and reports how many rows went.
func DeleteAll(db *gorm.DB) (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Lesson{})
	return result.RowsAffected, result.Error
}

// SeedLessons decodes the bundled starter catalog. Each call returns fresh values.
func SeedLessons() ([]Lesson, error) {
	var lessons []Lesson
	if err := json.Unmarshal(seedLessons, &lessons); err != nil {
		return nil, fmt.Errorf("decode lesson seed: %w", err)
	}
	for i := range lessons {
		if !lessons[i].LanguageMode.Valid() {
			return nil, fmt.Errorf("lesson seed %q: %w", lessons[i].Title, ErrInvalidLanguageMode)
		}
	}
	return lessons, nil
}
