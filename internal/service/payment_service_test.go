package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/enrollment-api/internal/models"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
)

type mockPaymentRepo struct {
	payments []models.Payment
	plans    []models.InstallmentPlan
	fulls    []models.FullPaymentRecord
	courses  []models.EnrolledCourse
}

func (m *mockPaymentRepo) CreateWithPlan(ctx context.Context, payment *models.Payment, plan *models.InstallmentPlan) error {
	payment.ID = int64(len(m.payments) + 1)
	plan.PaymentID = payment.ID
	m.payments = append(m.payments, *payment)
	m.plans = append(m.plans, *plan)
	return nil
}

func (m *mockPaymentRepo) CreateWithFullPayment(ctx context.Context, payment *models.Payment, record *models.FullPaymentRecord) error {
	payment.ID = int64(len(m.payments) + 1)
	record.PaymentID = payment.ID
	m.payments = append(m.payments, *payment)
	m.fulls = append(m.fulls, *record)
	return nil
}

func (m *mockPaymentRepo) ExistsForApplication(ctx context.Context, applicationID string) (bool, error) {
	for _, p := range m.payments {
		if p.ApplicationID == applicationID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPaymentRepo) ListCoursesByApplicant(ctx context.Context, fullName string) ([]models.EnrolledCourse, error) {
	return m.courses, nil
}

func validPayment(option models.PaymentOption, fee string) RecordPaymentRequest {
	return RecordPaymentRequest{
		ApplicationID:  "A100",
		FullName:       "Jane Smith",
		Email:          "jane@example.com",
		CourseID:       "C1",
		CourseName:     "Data Engineering",
		Fee:            decimal.RequireFromString(fee),
		PaymentMethod:  "credit_card",
		PaymentOption:  option,
		CardNumber:     "4111111111111111",
		ExpirationDate: "12/27",
		CVV:            "123",
	}
}

func TestPaymentRecordFullPayment(t *testing.T) {
	repo := &mockPaymentRepo{}
	notifier := &mockNotifier{}
	svc := NewPaymentService(repo, notifier, nil, nil)

	resp, err := svc.Record(context.Background(), validPayment(models.OptionFullPayment, "1000.00"))
	require.NoError(t, err)
	assert.Equal(t, models.OptionFullPayment, resp.Option)
	require.NotNil(t, resp.Full)
	assert.Nil(t, resp.Plan)
	assert.True(t, resp.Full.Amount.Equal(decimal.RequireFromString("1000.00")))

	require.Len(t, repo.payments, 1)
	require.Len(t, repo.fulls, 1)
	assert.Empty(t, repo.plans)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Body, "1000.00")
}

func TestPaymentRecordPaymentPlan(t *testing.T) {
	repo := &mockPaymentRepo{}
	notifier := &mockNotifier{}
	svc := NewPaymentService(repo, notifier, nil, nil)

	resp, err := svc.Record(context.Background(), validPayment(models.OptionPaymentPlan, "1000.00"))
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)
	assert.Nil(t, resp.Full)
	assert.Equal(t, "500.00", resp.Plan.FirstInstallment.StringFixed(2))
	assert.Equal(t, "500.00", resp.Plan.SecondInstallment.StringFixed(2))
	assert.Equal(t, models.InstallmentStatusPending, resp.Plan.Status)

	require.Len(t, repo.plans, 1)
	assert.Empty(t, repo.fulls)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Body, "500.00")
}

func TestPaymentRecordRejectsUnknownOption(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, &mockNotifier{}, nil, nil)

	_, err := svc.Record(context.Background(), validPayment(models.PaymentOption("wire_transfer"), "1000.00"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.payments)
}

func TestPaymentRecordRejectsNonPositiveFee(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, &mockNotifier{}, nil, nil)

	_, err := svc.Record(context.Background(), validPayment(models.OptionFullPayment, "-10.00"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.payments)
}

func TestPaymentRecordRepeatAttemptsAllowed(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, &mockNotifier{}, nil, nil)

	_, err := svc.Record(context.Background(), validPayment(models.OptionFullPayment, "1000.00"))
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), validPayment(models.OptionFullPayment, "1000.00"))
	require.NoError(t, err)
	assert.Len(t, repo.payments, 2)
}

func TestSplitInstallments(t *testing.T) {
	cases := []struct {
		fee    string
		first  string
		second string
	}{
		{"1000.00", "500.00", "500.00"},
		{"999.99", "500.00", "499.99"},
		{"0.01", "0.01", "0.00"},
		{"1500.50", "750.25", "750.25"},
	}
	for _, tc := range cases {
		fee := decimal.RequireFromString(tc.fee)
		first, second := SplitInstallments(fee)
		assert.Equal(t, tc.first, first.StringFixed(2), "fee %s first", tc.fee)
		assert.Equal(t, tc.second, second.StringFixed(2), "fee %s second", tc.fee)
		assert.True(t, first.Add(second).Equal(fee), "fee %s sum", tc.fee)
	}
}

func TestPaymentHasPayment(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, &mockNotifier{}, nil, nil)

	ok, err := svc.HasPayment(context.Background(), "A100")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Record(context.Background(), validPayment(models.OptionPaymentPlan, "1000.00"))
	require.NoError(t, err)

	ok, err = svc.HasPayment(context.Background(), "A100")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPaymentListEnrolledCoursesRequiresName(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, &mockNotifier{}, nil, nil)

	_, err := svc.ListEnrolledCourses(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
