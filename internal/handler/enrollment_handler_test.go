package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/service"
	"github.com/edulane/enrollment-api/pkg/mail"
)

type applicationRepoMock struct {
	applications map[string]models.Application
}

func (m *applicationRepoMock) Create(ctx context.Context, app *models.Application) error {
	if m.applications == nil {
		m.applications = make(map[string]models.Application)
	}
	m.applications[app.ApplicationNumber] = *app
	return nil
}

func (m *applicationRepoMock) FindByNumber(ctx context.Context, applicationNumber string) (*models.Application, error) {
	if app, ok := m.applications[applicationNumber]; ok {
		return &app, nil
	}
	return nil, sql.ErrNoRows
}

func (m *applicationRepoMock) FindDetailByNumber(ctx context.Context, applicationNumber string) (*models.ApplicationDetail, error) {
	return nil, sql.ErrNoRows
}

func (m *applicationRepoMock) ListPending(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	for _, app := range m.applications {
		if app.Status == models.StatusInProcessing {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (m *applicationRepoMock) UpdateStatus(ctx context.Context, applicationNumber string, status models.ApplicationStatus) (bool, error) {
	app, ok := m.applications[applicationNumber]
	if !ok {
		return false, nil
	}
	app.Status = status
	m.applications[applicationNumber] = app
	return true, nil
}

type courseCheckerMock struct{}

func (courseCheckerMock) Exists(ctx context.Context, id string) (bool, error) {
	return id == "C1", nil
}

type notifierMock struct {
	sent []mail.Message
}

func (n *notifierMock) Notify(ctx context.Context, msg mail.Message) {
	n.sent = append(n.sent, msg)
}

func newEnrollmentHandler() (*EnrollmentHandler, *applicationRepoMock) {
	repo := &applicationRepoMock{}
	svc := service.NewEnrollmentService(repo, courseCheckerMock{}, &notifierMock{}, nil, nil)
	return NewEnrollmentHandler(svc), repo
}

func submitBody() []byte {
	body, _ := json.Marshal(service.SubmitApplicationRequest{
		ApplicationNumber:  "A100",
		FullName:           "Jane Smith",
		Email:              "jane@example.com",
		Phone:              "555-0100",
		Qualification:      "BSc",
		QualificationScore: 85.5,
		CourseID:           "C1",
		StatementOfPurpose: "I want to learn.",
	})
	return body
}

func TestEnrollmentHandlerSubmitCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEnrollmentHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enroll", bytes.NewReader(submitBody()))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.StatusInProcessing, repo.applications["A100"].Status)
}

func TestEnrollmentHandlerSubmitInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newEnrollmentHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enroll", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerGetStatusNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newEnrollmentHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/applications/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "applicationNumber", Value: "missing"}}

	handler.GetStatus(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollmentHandlerApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEnrollmentHandler()
	repo.applications = map[string]models.Application{
		"A100": {ApplicationNumber: "A100", Email: "jane@example.com", Status: models.StatusInProcessing},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.DecisionRequest{Status: models.StatusApproved})
	req, _ := http.NewRequest(http.MethodPut, "/admin/dashboard/applications/A100/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "applicationNumber", Value: "A100"}}

	handler.Approve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusApproved, repo.applications["A100"].Status)
}

func TestEnrollmentHandlerApproveRejectsBadStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEnrollmentHandler()
	repo.applications = map[string]models.Application{
		"A100": {ApplicationNumber: "A100", Status: models.StatusInProcessing},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"status":"InProcessing"}`)
	req, _ := http.NewRequest(http.MethodPut, "/admin/dashboard/applications/A100/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "applicationNumber", Value: "A100"}}

	handler.Approve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.StatusInProcessing, repo.applications["A100"].Status)
}

func TestEnrollmentHandlerDeny(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newEnrollmentHandler()
	repo.applications = map[string]models.Application{
		"A100": {ApplicationNumber: "A100", Email: "jane@example.com", Status: models.StatusInProcessing},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/admin/dashboard/applications/A100/deny", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "applicationNumber", Value: "A100"}}

	handler.Deny(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusDenied, repo.applications["A100"].Status)
}

func TestEnrollmentHandlerExportSetsAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newEnrollmentHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/dashboard/applications/export?format=csv", nil)
	c.Request = req

	handler.ExportPending(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pending-applications.csv")
}
