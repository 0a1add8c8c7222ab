package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCoursesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CoursesRepo {
	return &CoursesRepo{pool: pool, prom: prom}
}

func (r *CoursesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *CoursesRepo) List(ctx context.Context) ([]course.Course, error) {
	var output []course.Course

	err := r.observe("courses.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, description, duration, level, created_at, updated_at
			 FROM courses
			 ORDER BY created_at ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]course.Course, 0)

		for rows.Next() {
			var c course.Course

			err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.Duration, &c.Level, &c.CreatedAt, &c.UpdatedAt)

			if err != nil {
				return err
			}

			output = append(output, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *CoursesRepo) GetByID(ctx context.Context, id string) (course.Course, error) {
	var c course.Course

	err := r.observe("courses.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, duration, level, created_at, updated_at
			 FROM courses
			 WHERE id = $1`, id).
			Scan(&c.ID, &c.Title, &c.Description, &c.Duration, &c.Level, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}

		return course.Course{}, err
	}

	// eager lesson fetch, display order
	err = r.observe("courses.get_by_id.lessons", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, course_id, title, description, order_number
			 FROM lessons
			 WHERE course_id = $1
			 ORDER BY order_number ASC, id ASC`, id)

		if err != nil {
			return err
		}

		defer rows.Close()

		c.Lessons = make([]course.Lesson, 0)

		for rows.Next() {
			var l course.Lesson

			err = rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Description, &l.OrderNumber)

			if err != nil {
				return err
			}

			c.Lessons = append(c.Lessons, l)
		}

		return rows.Err()
	})

	if err != nil {
		return course.Course{}, err
	}

	return c, nil
}

func (r *CoursesRepo) Create(ctx context.Context, req course.CreateCourseRequest) (course.Course, error) {
	c := course.NewFromCreateRequest(req)

	err := r.observe("courses.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO courses (id, title, description, duration, level, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.Title, c.Description, c.Duration, c.Level, c.CreatedAt, c.UpdatedAt)
		return execErr
	})

	if err != nil {
		return course.Course{}, err
	}

	return c, nil
}

func (r *CoursesRepo) Update(ctx context.Context, id string, req course.UpdateCourseRequest) (course.Course, error) {
	var c course.Course

	err := r.observe("courses.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE courses
				SET title = $2,
						description = $3,
						duration = $4,
						level = $5,
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, description, duration, level, created_at, updated_at`,
			id,
			req.Title,
			req.Description,
			req.Duration,
			req.Level,
		).Scan(&c.ID, &c.Title, &c.Description, &c.Duration, &c.Level, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}

		return course.Course{}, err
	}

	return c, nil
}

// Delete returns the deleted row so the handler can echo it back. Lessons go
// with the course via ON DELETE CASCADE.
func (r *CoursesRepo) Delete(ctx context.Context, id string) (course.Course, error) {
	var c course.Course

	err := r.observe("courses.delete", func() error {
		return r.pool.QueryRow(ctx,
			`DELETE FROM courses
			 WHERE id = $1
			 RETURNING id, title, description, duration, level, created_at, updated_at`,
			id,
		).Scan(&c.ID, &c.Title, &c.Description, &c.Duration, &c.Level, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}

		return course.Course{}, err
	}

	return c, nil
}

func (r *CoursesRepo) AddLesson(ctx context.Context, courseID string, req course.CreateLessonRequest) (course.Lesson, error) {
	// existence check first so an absent course maps to not-found rather than
	// a foreign key violation
	var exists bool

	err := r.observe("lessons.course_check", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
	})

	if err != nil {
		return course.Lesson{}, err
	}

	if !exists {
		return course.Lesson{}, course.ErrNotFound
	}

	l := course.NewLessonFromCreateRequest(courseID, req)

	err = r.observe("lessons.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO lessons (id, course_id, title, description, order_number)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.CourseID, l.Title, l.Description, l.OrderNumber)
		return execErr
	})

	if err != nil {
		return course.Lesson{}, err
	}

	return l, nil
}
