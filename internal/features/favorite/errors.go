package favorite

import "errors"

var (
	ErrLessonIDRequired = errors.New("lessonId is required")
	ErrNegativeIndex    = errors.New("itemIndex must not be negative")
	ErrItemDataRequired = errors.New("itemData is required to add a favorite")
)
