package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edulane/enrollment-api/internal/models"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/mail"
)

type paymentRepository interface {
	CreateWithPlan(ctx context.Context, payment *models.Payment, plan *models.InstallmentPlan) error
	CreateWithFullPayment(ctx context.Context, payment *models.Payment, record *models.FullPaymentRecord) error
	ExistsForApplication(ctx context.Context, applicationID string) (bool, error)
	ListCoursesByApplicant(ctx context.Context, fullName string) ([]models.EnrolledCourse, error)
}

// RecordPaymentRequest carries one payment attempt. Card fields are accepted
// as opaque strings; only presence and expiry shape are validated.
type RecordPaymentRequest struct {
	ApplicationID  string               `json:"application_id" validate:"required"`
	FullName       string               `json:"full_name" validate:"required"`
	Email          string               `json:"email" validate:"required,email"`
	CourseID       string               `json:"course_id" validate:"required"`
	CourseName     string               `json:"course_name" validate:"required"`
	Fee            decimal.Decimal      `json:"fee" validate:"required"`
	PaymentMethod  string               `json:"payment_method" validate:"required"`
	PaymentOption  models.PaymentOption `json:"payment_option" validate:"required"`
	CardNumber     string               `json:"card_number" validate:"required"`
	ExpirationDate string               `json:"expiration_date" validate:"required,len=5"`
	CVV            string               `json:"cvv" validate:"required,min=3,max=4"`
}

// RecordPaymentResponse returns the ledger outcome.
type RecordPaymentResponse struct {
	PaymentID int64                     `json:"payment_id"`
	Option    models.PaymentOption      `json:"payment_option"`
	Plan      *models.InstallmentPlan   `json:"installment_plan,omitempty"`
	Full      *models.FullPaymentRecord `json:"full_payment,omitempty"`
}

// PaymentService records payments and tracks installment plans.
type PaymentService struct {
	repo      paymentRepository
	notifier  Notifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(repo paymentRepository, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// Record persists the payment and its option sub-record in one transaction,
// then queues the acknowledgment email. Unknown options are rejected before
// any row is written. Repeated attempts for the same application are allowed.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if !req.PaymentOption.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment_option must be full_payment or payment_plan")
	}
	if !req.Fee.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fee must be positive")
	}

	payment := &models.Payment{
		ApplicationID:  req.ApplicationID,
		FullName:       req.FullName,
		Email:          req.Email,
		CourseID:       req.CourseID,
		CourseName:     req.CourseName,
		Fee:            req.Fee,
		PaymentMethod:  req.PaymentMethod,
		PaymentOption:  req.PaymentOption,
		CardNumber:     req.CardNumber,
		ExpirationDate: req.ExpirationDate,
		CVV:            req.CVV,
	}

	resp := &RecordPaymentResponse{Option: req.PaymentOption}

	switch req.PaymentOption {
	case models.OptionPaymentPlan:
		first, second := SplitInstallments(req.Fee)
		plan := &models.InstallmentPlan{
			FirstInstallment:  first,
			SecondInstallment: second,
			Status:            models.InstallmentStatusPending,
		}
		if err := s.repo.CreateWithPlan(ctx, payment, plan); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment plan")
		}
		resp.PaymentID = payment.ID
		resp.Plan = plan
		s.notifier.Notify(ctx, mail.PaymentPlanAcknowledgment(req.Email, req.FullName, req.CourseName,
			first.StringFixed(2), second.StringFixed(2)))

	case models.OptionFullPayment:
		record := &models.FullPaymentRecord{Amount: req.Fee}
		if err := s.repo.CreateWithFullPayment(ctx, payment, record); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
		}
		resp.PaymentID = payment.ID
		resp.Full = record
		s.notifier.Notify(ctx, mail.FullPaymentAcknowledgment(req.Email, req.FullName, req.CourseName,
			req.Fee.StringFixed(2)))
	}

	return resp, nil
}

// HasPayment reports whether any payment row exists for the application. A
// payment plan with only the first installment received reports the same as
// a full payment.
func (s *PaymentService) HasPayment(ctx context.Context, applicationID string) (bool, error) {
	exists, err := s.repo.ExistsForApplication(ctx, applicationID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check payment")
	}
	return exists, nil
}

// ListEnrolledCourses returns the courses the named applicant has paid
// toward. Matching is on the denormalized name snapshot.
func (s *PaymentService) ListEnrolledCourses(ctx context.Context, fullName string) ([]models.EnrolledCourse, error) {
	if fullName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "full name is required")
	}
	courses, err := s.repo.ListCoursesByApplicant(ctx, fullName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled courses")
	}
	return courses, nil
}

// SplitInstallments halves the fee into two installments that always sum to
// the fee: the first is half rounded to cents, the second is the remainder.
func SplitInstallments(fee decimal.Decimal) (first, second decimal.Decimal) {
	first = fee.Div(decimal.NewFromInt(2)).Round(2)
	second = fee.Sub(first)
	return first, second
}
