package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus tracks the review lifecycle of an application.
type ApplicationStatus string

// Lifecycle: InProcessing on submission, then Approved or Denied through the
// admin review actions. Terminal states are not re-enterable.
const (
	StatusInProcessing ApplicationStatus = "InProcessing"
	StatusApproved     ApplicationStatus = "Approved"
	StatusDenied       ApplicationStatus = "Denied"
)

// DecisionStatuses are the statuses an admin may set on review.
var DecisionStatuses = map[ApplicationStatus]struct{}{
	StatusApproved: {},
	StatusDenied:   {},
}

// Application is an enrollment submission keyed by its application number.
type Application struct {
	ApplicationNumber  string            `db:"application_number" json:"application_number"`
	FullName           string            `db:"full_name" json:"full_name"`
	Email              string            `db:"email" json:"email"`
	Phone              string            `db:"phone" json:"phone"`
	Qualification      string            `db:"qualification" json:"qualification"`
	DegreeType         *string           `db:"degree_type" json:"degree_type,omitempty"`
	QualificationScore float64           `db:"qualification_score" json:"qualification_score"`
	CourseID           string            `db:"course_id" json:"course_id"`
	StatementOfPurpose string            `db:"statement_of_purpose" json:"statement_of_purpose"`
	Status             ApplicationStatus `db:"status" json:"status"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}

// ApplicationDetail joins an application with its referenced course.
type ApplicationDetail struct {
	Application
	CourseTitle   string          `db:"course_title" json:"course_title"`
	CourseProgram string          `db:"course_program" json:"course_program"`
	CoursePrice   decimal.Decimal `db:"course_price" json:"course_price"`
	CourseStart   string          `db:"course_start" json:"course_start"`
}
