package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/service"
)

type accountRepoMock struct {
	accounts map[models.AccountKind]map[string]models.Account
}

func newAccountRepoMock() *accountRepoMock {
	return &accountRepoMock{accounts: map[models.AccountKind]map[string]models.Account{
		models.KindUser:  {},
		models.KindAdmin: {},
	}}
}

func (m *accountRepoMock) FindByEmail(ctx context.Context, kind models.AccountKind, email string) (*models.Account, error) {
	if account, ok := m.accounts[kind][email]; ok {
		return &account, nil
	}
	return nil, sql.ErrNoRows
}

func (m *accountRepoMock) Insert(ctx context.Context, kind models.AccountKind, account *models.Account) error {
	account.ID = "acc-1"
	m.accounts[kind][account.Email] = *account
	return nil
}

func newAuthHandler() *AuthHandler {
	svc := service.NewAuthService(newAccountRepoMock(), nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "enrollment-api",
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerRegisterCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.RegisterRequest{FullName: "Jane Smith", Email: "jane@example.com", Password: "secret123"})
	req, _ := http.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(models.KindUser)(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
}

func TestAuthHandlerRegisterInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(models.KindUser)(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLoginUnknownAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Login(models.KindUser)(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerDashboardWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Request = req

	handler.Dashboard(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
