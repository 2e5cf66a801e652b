package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/repository"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/export"
	"github.com/edulane/enrollment-api/pkg/mail"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByNumber(ctx context.Context, applicationNumber string) (*models.Application, error)
	FindDetailByNumber(ctx context.Context, applicationNumber string) (*models.ApplicationDetail, error)
	ListPending(ctx context.Context) ([]models.Application, error)
	UpdateStatus(ctx context.Context, applicationNumber string, status models.ApplicationStatus) (bool, error)
}

type courseChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// SubmitApplicationRequest describes an enrollment submission.
type SubmitApplicationRequest struct {
	ApplicationNumber  string  `json:"application_number" validate:"required"`
	FullName           string  `json:"full_name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	Phone              string  `json:"phone" validate:"required"`
	Qualification      string  `json:"qualification" validate:"required"`
	DegreeType         *string `json:"degree_type,omitempty"`
	QualificationScore float64 `json:"qualification_score" validate:"gte=0"`
	CourseID           string  `json:"course_id" validate:"required"`
	StatementOfPurpose string  `json:"statement_of_purpose" validate:"required"`
}

// DecisionRequest carries the admin review outcome. The status is constrained
// to the non-initial enum values.
type DecisionRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required"`
}

// StatusResponse reports the current status with the underlying record.
type StatusResponse struct {
	Status      models.ApplicationStatus `json:"status"`
	Application *models.Application      `json:"application"`
}

// EnrollmentService owns the application review lifecycle.
type EnrollmentService struct {
	repo      applicationRepository
	courses   courseChecker
	notifier  Notifier
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo applicationRepository, courses courseChecker, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		courses:   courses,
		notifier:  notifier,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Submit persists a new application in processing state and queues the
// confirmation email. A duplicate application number conflicts; the first
// record stays untouched.
func (s *EnrollmentService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	exists, err := s.courses.Exists(ctx, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify course")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	app := &models.Application{
		ApplicationNumber:  req.ApplicationNumber,
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		Qualification:      req.Qualification,
		DegreeType:         req.DegreeType,
		QualificationScore: req.QualificationScore,
		CourseID:           req.CourseID,
		StatementOfPurpose: req.StatementOfPurpose,
		Status:             models.StatusInProcessing,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "application with this number already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.notifier.Notify(ctx, mail.EnrollmentConfirmation(app.Email, app.FullName, app.ApplicationNumber))
	return app, nil
}

// GetStatus returns the status and record for an application number.
func (s *EnrollmentService) GetStatus(ctx context.Context, applicationNumber string) (*StatusResponse, error) {
	app, err := s.repo.FindByNumber(ctx, applicationNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return &StatusResponse{Status: app.Status, Application: app}, nil
}

// GetDetails returns the application joined with its course.
func (s *EnrollmentService) GetDetails(ctx context.Context, applicationNumber string) (*models.ApplicationDetail, error) {
	detail, err := s.repo.FindDetailByNumber(ctx, applicationNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application or course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application detail")
	}
	return detail, nil
}

// ListPending returns in-processing applications ordered by application
// number ascending.
func (s *EnrollmentService) ListPending(ctx context.Context) ([]models.Application, error) {
	apps, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending applications")
	}
	return apps, nil
}

// Decide applies a review outcome and queues the matching notification.
// Re-deciding an application already in a terminal state is accepted.
func (s *EnrollmentService) Decide(ctx context.Context, applicationNumber string, status models.ApplicationStatus) (*models.Application, error) {
	if _, ok := models.DecisionStatuses[status]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("status must be %s or %s", models.StatusApproved, models.StatusDenied))
	}

	matched, err := s.repo.UpdateStatus(ctx, applicationNumber, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application status")
	}
	if !matched {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}

	app, err := s.repo.FindByNumber(ctx, applicationNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	switch status {
	case models.StatusApproved:
		s.notifier.Notify(ctx, mail.ApplicationApproved(app.Email, app.FullName, app.ApplicationNumber))
	case models.StatusDenied:
		s.notifier.Notify(ctx, mail.ApplicationDenied(app.Email, app.FullName, app.ApplicationNumber))
	}

	return app, nil
}

// ExportPending renders the pending list as a CSV or PDF attachment.
func (s *EnrollmentService) ExportPending(ctx context.Context, format string) ([]byte, string, error) {
	apps, err := s.ListPending(ctx)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"Application Number", "Full Name", "Email", "Course", "Score", "Submitted"}
	rows := make([]map[string]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, map[string]string{
			"Application Number": app.ApplicationNumber,
			"Full Name":          app.FullName,
			"Email":              app.Email,
			"Course":             app.CourseID,
			"Score":              fmt.Sprintf("%.2f", app.QualificationScore),
			"Submitted":          app.CreatedAt.Format("2006-01-02"),
		})
	}
	data := export.Dataset{Headers: headers, Rows: rows}

	switch format {
	case "csv", "":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(data, "Pending Applications")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
