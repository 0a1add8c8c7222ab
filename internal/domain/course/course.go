package course

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("course not found")

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Populated only by GetByID; list responses stay lean.
	Lessons []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderNumber int    `json:"order_number"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
	Duration    string `json:"duration" binding:"required,min=1,max=80"`
	Level       string `json:"level" binding:"required,min=1,max=80"`
}

// Full-payload update, same shape as create. Partial patches are not offered.
type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
	Duration    string `json:"duration" binding:"required,min=1,max=80"`
	Level       string `json:"level" binding:"required,min=1,max=80"`
}

// order_number uniqueness within a course is assumed by the UI but not
// enforced here; reads sort by order_number then id so duplicates stay stable.
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
	OrderNumber int    `json:"order_number" binding:"required,min=1"`
}
