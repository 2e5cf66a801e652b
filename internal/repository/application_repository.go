package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/enrollment-api/internal/models"
)

// ApplicationRepository handles persistence of enrollment applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create persists a new application. The application number is the primary
// key; a duplicate submission fails with ErrDuplicate and leaves the first
// record untouched.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = models.StatusInProcessing
	}
	const query = `INSERT INTO applications (application_number, full_name, email, phone, qualification, degree_type, qualification_score, course_id, statement_of_purpose, status, created_at, updated_at)
        VALUES (:application_number, :full_name, :email, :phone, :qualification, :degree_type, :qualification_score, :course_id, :statement_of_purpose, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByNumber returns an application by its application number.
func (r *ApplicationRepository) FindByNumber(ctx context.Context, applicationNumber string) (*models.Application, error) {
	const query = `SELECT application_number, full_name, email, phone, qualification, degree_type, qualification_score, course_id, statement_of_purpose, status, created_at, updated_at
        FROM applications WHERE application_number = $1 LIMIT 1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, applicationNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// FindDetailByNumber returns an application joined with its course. Missing
// course rows surface as sql.ErrNoRows, matching a missing application.
func (r *ApplicationRepository) FindDetailByNumber(ctx context.Context, applicationNumber string) (*models.ApplicationDetail, error) {
	const query = `SELECT a.application_number, a.full_name, a.email, a.phone, a.qualification, a.degree_type, a.qualification_score, a.course_id, a.statement_of_purpose, a.status, a.created_at, a.updated_at,
        c.title AS course_title, c.program AS course_program, c.price AS course_price, c.start_date AS course_start
        FROM applications a
        JOIN courses c ON c.id = a.course_id
        WHERE a.application_number = $1`
	var detail models.ApplicationDetail
	if err := r.db.GetContext(ctx, &detail, query, applicationNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application detail: %w", err)
	}
	return &detail, nil
}

// ListPending returns applications still in processing, ordered by
// application number ascending.
func (r *ApplicationRepository) ListPending(ctx context.Context) ([]models.Application, error) {
	const query = `SELECT application_number, full_name, email, phone, qualification, degree_type, qualification_score, course_id, statement_of_purpose, status, created_at, updated_at
        FROM applications WHERE status = $1 ORDER BY application_number ASC`
	var apps []models.Application
	if err := r.db.SelectContext(ctx, &apps, query, models.StatusInProcessing); err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus sets the status of an application and reports whether a row
// matched. No state guard is applied: re-deciding a terminal application is
// accepted, as the review UI relies on the pending list to hide them.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationNumber string, status models.ApplicationStatus) (bool, error) {
	const query = `UPDATE applications SET status = $2, updated_at = $3 WHERE application_number = $1`
	res, err := r.db.ExecContext(ctx, query, applicationNumber, status, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update application status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update application status: %w", err)
	}
	return affected > 0, nil
}
