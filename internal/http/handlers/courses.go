package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/gin-gonic/gin"
)

type CatalogStore interface {
	List(ctx context.Context) ([]course.Course, error)
	GetByID(ctx context.Context, id string) (course.Course, error)
	Create(ctx context.Context, req course.CreateCourseRequest) (course.Course, error)
	Update(ctx context.Context, id string, req course.UpdateCourseRequest) (course.Course, error)
	Delete(ctx context.Context, id string) (course.Course, error)
	AddLesson(ctx context.Context, courseID string, req course.CreateLessonRequest) (course.Lesson, error)
}

type CoursesHandler struct {
	store CatalogStore
	log   *slog.Logger
}

func NewCoursesHandler(store CatalogStore, log *slog.Logger) *CoursesHandler {
	return &CoursesHandler{store: store, log: log}
}

func (h *CoursesHandler) ListCourses(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	courses, err := h.store.List(cctx)

	if err != nil {
		h.log.Error("course list failed", "err", err)
		RespondInternal(ctx, "Could not list courses")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": courses,
		"count": len(courses),
	})
}

func (h *CoursesHandler) GetCourseByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	id := ctx.Param("id")

	c, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			RespondNotFound(ctx, "Course not found")
			return
		}

		h.log.Error("course fetch failed", "id", id, "err", err)
		RespondInternal(ctx, "Could not fetch course")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"course": c})
}

func (h *CoursesHandler) CreateCourse(ctx *gin.Context) {
	var req course.CreateCourseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.store.Create(cctx, req)

	if err != nil {
		h.log.Error("course create failed", "err", err)
		RespondInternal(ctx, "Could not create course")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"course": c})
}

func (h *CoursesHandler) UpdateCourse(ctx *gin.Context) {
	var req course.UpdateCourseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	id := ctx.Param("id")

	c, err := h.store.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			RespondNotFound(ctx, "Course not found")
			return
		}

		h.log.Error("course update failed", "id", id, "err", err)
		RespondInternal(ctx, "Could not update course")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"course": c})
}

// DeleteCourse echoes the deleted course back, mirroring the other write
// responses.
func (h *CoursesHandler) DeleteCourse(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	id := ctx.Param("id")

	c, err := h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			RespondNotFound(ctx, "Course not found")
			return
		}

		h.log.Error("course delete failed", "id", id, "err", err)
		RespondInternal(ctx, "Could not delete course")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"course": c})
}

func (h *CoursesHandler) AddLesson(ctx *gin.Context) {
	var req course.CreateLessonRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	courseID := ctx.Param("id")

	l, err := h.store.AddLesson(cctx, courseID, req)

	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			RespondNotFound(ctx, "Course not found")
			return
		}

		h.log.Error("lesson create failed", "course_id", courseID, "err", err)
		RespondInternal(ctx, "Could not add lesson")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"lesson": l})
}
