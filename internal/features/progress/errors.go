package progress

import "errors"

var (
	ErrLessonIDRequired = errors.New("lessonId is required")
	ErrNegativeItem     = errors.New("completedItems must not contain negative indices")
)
