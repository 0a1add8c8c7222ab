package course

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateCourseRequest) Course {
	now := time.Now().UTC()

	return Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewLessonFromCreateRequest(courseID string, req CreateLessonRequest) Lesson {
	return Lesson{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		OrderNumber: req.OrderNumber,
	}
}
