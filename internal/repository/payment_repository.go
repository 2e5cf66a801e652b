package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/enrollment-api/internal/models"
)

// PaymentRepository handles persistence of payments and their sub-records.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateWithPlan inserts the payment row and its installment plan in one
// transaction, so a payment can never be left without its sub-record.
func (r *PaymentRepository) CreateWithPlan(ctx context.Context, payment *models.Payment, plan *models.InstallmentPlan) error {
	return r.createWithSubRecord(ctx, payment, func(tx *sqlx.Tx) error {
		plan.PaymentID = payment.ID
		if plan.Status == "" {
			plan.Status = models.InstallmentStatusPending
		}
		if plan.CreatedAt.IsZero() {
			plan.CreatedAt = time.Now().UTC()
		}
		const query = `INSERT INTO installment_plans (payment_id, first_installment, second_installment, status, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.GetContext(ctx, &plan.ID, query, plan.PaymentID, plan.FirstInstallment, plan.SecondInstallment, plan.Status, plan.CreatedAt); err != nil {
			return fmt.Errorf("insert installment plan: %w", err)
		}
		return nil
	})
}

// CreateWithFullPayment inserts the payment row and its full-payment record
// in one transaction.
func (r *PaymentRepository) CreateWithFullPayment(ctx context.Context, payment *models.Payment, record *models.FullPaymentRecord) error {
	return r.createWithSubRecord(ctx, payment, func(tx *sqlx.Tx) error {
		record.PaymentID = payment.ID
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
		const query = `INSERT INTO full_payments (payment_id, amount, created_at)
            VALUES ($1, $2, $3) RETURNING id`
		if err := tx.GetContext(ctx, &record.ID, query, record.PaymentID, record.Amount, record.CreatedAt); err != nil {
			return fmt.Errorf("insert full payment: %w", err)
		}
		return nil
	})
}

func (r *PaymentRepository) createWithSubRecord(ctx context.Context, payment *models.Payment, insertSub func(*sqlx.Tx) error) (err error) {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO payments (application_id, full_name, email, course_id, course_name, fee, payment_method, payment_option, card_number, expiration_date, cvv, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err = tx.GetContext(ctx, &payment.ID, query,
		payment.ApplicationID, payment.FullName, payment.Email, payment.CourseID, payment.CourseName,
		payment.Fee, payment.PaymentMethod, payment.PaymentOption, payment.CardNumber, payment.ExpirationDate,
		payment.CVV, payment.CreatedAt); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if err = insertSub(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit payment tx: %w", err)
	}
	return nil
}

// ExistsForApplication reports whether any payment row references the
// application, regardless of option or installment completion.
func (r *PaymentRepository) ExistsForApplication(ctx context.Context, applicationID string) (bool, error) {
	const query = `SELECT 1 FROM payments WHERE application_id = $1 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, applicationID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check payment exists: %w", err)
	}
	return true, nil
}

// ListCoursesByApplicant returns the distinct courses paid toward under the
// given applicant name. The match is on the denormalized name snapshot.
func (r *PaymentRepository) ListCoursesByApplicant(ctx context.Context, fullName string) ([]models.EnrolledCourse, error) {
	const query = `SELECT DISTINCT course_id, course_name FROM payments WHERE full_name = $1 ORDER BY course_id ASC`
	var courses []models.EnrolledCourse
	if err := r.db.SelectContext(ctx, &courses, query, fullName); err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	return courses, nil
}
