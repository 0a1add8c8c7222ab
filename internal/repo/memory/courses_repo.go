package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/learnhub/internal/domain/course"
)

type CoursesRepo struct {
	mu      sync.RWMutex
	items   map[string]course.Course
	lessons map[string][]course.Lesson // courseID -> lessons, unsorted
	order   []string                   // insertion order of course IDs
}

func NewCoursesRepo() *CoursesRepo {
	return &CoursesRepo{
		items:   make(map[string]course.Course),
		lessons: make(map[string][]course.Lesson),
	}
}

func (r *CoursesRepo) List(_ context.Context) ([]course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]course.Course, 0, len(r.order))

	for _, id := range r.order {
		output = append(output, r.items[id])
	}

	return output, nil
}

func (r *CoursesRepo) GetByID(_ context.Context, id string) (course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]

	if !ok {
		return course.Course{}, course.ErrNotFound
	}

	attached := make([]course.Lesson, len(r.lessons[id]))
	copy(attached, r.lessons[id])

	// display order, id as tiebreak for duplicate order numbers
	sort.Slice(attached, func(i, j int) bool {
		if attached[i].OrderNumber != attached[j].OrderNumber {
			return attached[i].OrderNumber < attached[j].OrderNumber
		}
		return attached[i].ID < attached[j].ID
	})

	c.Lessons = attached

	return c, nil
}

func (r *CoursesRepo) Create(_ context.Context, req course.CreateCourseRequest) (course.Course, error) {
	c := course.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[c.ID] = c
	r.order = append(r.order, c.ID)
	r.mu.Unlock()

	return c, nil
}

func (r *CoursesRepo) Update(_ context.Context, id string, req course.UpdateCourseRequest) (course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]

	if !ok {
		return course.Course{}, course.ErrNotFound
	}

	c.Title = req.Title
	c.Description = req.Description
	c.Duration = req.Duration
	c.Level = req.Level
	c.UpdatedAt = time.Now().UTC()

	r.items[id] = c

	return c, nil
}

func (r *CoursesRepo) Delete(_ context.Context, id string) (course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]

	if !ok {
		return course.Course{}, course.ErrNotFound
	}

	delete(r.items, id)
	delete(r.lessons, id)

	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return c, nil
}

func (r *CoursesRepo) AddLesson(_ context.Context, courseID string, req course.CreateLessonRequest) (course.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[courseID]; !ok {
		return course.Lesson{}, course.ErrNotFound
	}

	l := course.NewLessonFromCreateRequest(courseID, req)

	r.lessons[courseID] = append(r.lessons[courseID], l)

	return l, nil
}
