package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/repository"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/mail"
)

type mockApplicationRepo struct {
	applications map[string]models.Application
	details      map[string]models.ApplicationDetail
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if m.applications == nil {
		m.applications = make(map[string]models.Application)
	}
	if _, ok := m.applications[app.ApplicationNumber]; ok {
		return repository.ErrDuplicate
	}
	m.applications[app.ApplicationNumber] = *app
	return nil
}

func (m *mockApplicationRepo) FindByNumber(ctx context.Context, applicationNumber string) (*models.Application, error) {
	if app, ok := m.applications[applicationNumber]; ok {
		return &app, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockApplicationRepo) FindDetailByNumber(ctx context.Context, applicationNumber string) (*models.ApplicationDetail, error) {
	if detail, ok := m.details[applicationNumber]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockApplicationRepo) ListPending(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	for _, app := range m.applications {
		if app.Status == models.StatusInProcessing {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, applicationNumber string, status models.ApplicationStatus) (bool, error) {
	app, ok := m.applications[applicationNumber]
	if !ok {
		return false, nil
	}
	app.Status = status
	m.applications[applicationNumber] = app
	return true, nil
}

type mockCourseChecker struct {
	existing map[string]bool
}

func (m *mockCourseChecker) Exists(ctx context.Context, id string) (bool, error) {
	return m.existing[id], nil
}

type mockNotifier struct {
	sent []mail.Message
}

func (m *mockNotifier) Notify(ctx context.Context, msg mail.Message) {
	m.sent = append(m.sent, msg)
}

func newEnrollmentFixture() (*EnrollmentService, *mockApplicationRepo, *mockNotifier) {
	repo := &mockApplicationRepo{}
	notifier := &mockNotifier{}
	courses := &mockCourseChecker{existing: map[string]bool{"C1": true}}
	svc := NewEnrollmentService(repo, courses, notifier, nil, nil)
	return svc, repo, notifier
}

func validSubmit() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		ApplicationNumber:  "A100",
		FullName:           "Jane Smith",
		Email:              "jane@example.com",
		Phone:              "555-0100",
		Qualification:      "BSc",
		QualificationScore: 85.5,
		CourseID:           "C1",
		StatementOfPurpose: "I want to learn.",
	}
}

func TestEnrollmentSubmitStartsInProcessing(t *testing.T) {
	svc, _, notifier := newEnrollmentFixture()

	app, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProcessing, app.Status)

	status, err := svc.GetStatus(context.Background(), "A100")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProcessing, status.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "jane@example.com", notifier.sent[0].To)
	assert.Contains(t, notifier.sent[0].Body, "A100")
}

func TestEnrollmentSubmitDuplicateConflicts(t *testing.T) {
	svc, repo, _ := newEnrollmentFixture()

	first, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	req := validSubmit()
	req.FullName = "Impostor"
	_, err = svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	// first record unmodified
	assert.Equal(t, first.FullName, repo.applications["A100"].FullName)
}

func TestEnrollmentSubmitUnknownCourse(t *testing.T) {
	svc, _, notifier := newEnrollmentFixture()

	req := validSubmit()
	req.CourseID = "missing"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, notifier.sent)
}

func TestEnrollmentSubmitInvalidPayload(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()

	req := validSubmit()
	req.Email = "not-an-email"
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentDecideApproveAndDeny(t *testing.T) {
	svc, _, notifier := newEnrollmentFixture()
	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	app, err := svc.Decide(context.Background(), "A100", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)

	status, err := svc.GetStatus(context.Background(), "A100")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, status.Status)

	app, err = svc.Decide(context.Background(), "A100", models.StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDenied, app.Status)

	// submission + approval + denial notifications
	require.Len(t, notifier.sent, 3)
	assert.Contains(t, notifier.sent[1].Subject, "Approved")
}

func TestEnrollmentDecideRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()
	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), "A100", models.StatusInProcessing)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Decide(context.Background(), "A100", models.ApplicationStatus("Rejected"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentDecideNotFound(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()

	_, err := svc.Decide(context.Background(), "missing", models.StatusApproved)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentGetDetailsNotFound(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()

	_, err := svc.GetDetails(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentExportPending(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()
	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	payload, contentType, err := svc.ExportPending(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "A100")

	payload, contentType, err = svc.ExportPending(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, payload)

	_, _, err = svc.ExportPending(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
