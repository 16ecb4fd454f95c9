package lesson

import "errors"

var (
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrInvalidLanguageMode = errors.New("languageMode must be learn-thai or learn-english")
)
