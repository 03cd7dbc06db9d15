package util

import "errors"

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotPurchased      = errors.New("course not purchased")
	ErrAlreadyPurchased  = errors.New("course already purchased")
	ErrPositionConflict  = errors.New("duplicate chapter position in reorder batch")
	ErrCourseIncomplete  = errors.New("course is missing required fields for publishing")
	ErrChapterIncomplete = errors.New("chapter is missing required fields for publishing")
	ErrCategoryInUse     = errors.New("category is referenced by existing courses")
)
