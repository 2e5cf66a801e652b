package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/enrollment-api/internal/models"
)

// CourseRepository handles persistence of catalog courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create persists a new course. The caller-supplied id is the primary key, so
// a duplicate insert fails atomically with ErrDuplicate rather than racing a
// separate existence check.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO courses (id, program, title, description, price, duration, start_date, image_url, created_at)
        VALUES (:id, :program, :title, :description, :price, :duration, :start_date, :image_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by its id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, program, title, description, price, duration, start_date, image_url, created_at FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// Exists reports whether a course with the id is in the catalog.
func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM courses WHERE id = $1 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course exists: %w", err)
	}
	return true, nil
}

// List returns every course ordered by program then title, ready for
// grouping by the service layer.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, program, title, description, price, duration, start_date, image_url, created_at FROM courses ORDER BY program ASC, title ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}
