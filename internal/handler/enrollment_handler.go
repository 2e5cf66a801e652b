package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/service"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/response"
)

// EnrollmentHandler exposes the application lifecycle endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Submit godoc
// @Summary Submit enrollment application
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body service.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /enroll [post]
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	app, err := h.enrollments.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// GetStatus godoc
// @Summary Fetch application status
// @Tags Applications
// @Produce json
// @Param applicationNumber path string true "Application number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{applicationNumber} [get]
func (h *EnrollmentHandler) GetStatus(c *gin.Context) {
	res, err := h.enrollments.GetStatus(c.Request.Context(), c.Param("applicationNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// GetDetails godoc
// @Summary Fetch application joined with its course
// @Tags Applications
// @Produce json
// @Param applicationId path string true "Application number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{applicationId}/details [get]
func (h *EnrollmentHandler) GetDetails(c *gin.Context) {
	detail, err := h.enrollments.GetDetails(c.Request.Context(), c.Param("applicationNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// ListPending godoc
// @Summary List in-processing applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard/applications [get]
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	apps, err := h.enrollments.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

// Approve godoc
// @Summary Apply a review decision
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationNumber path string true "Application number"
// @Param payload body service.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/dashboard/applications/{applicationNumber}/approve [put]
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	var req service.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	app, err := h.enrollments.Decide(c.Request.Context(), c.Param("applicationNumber"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// Deny godoc
// @Summary Deny an application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param applicationNumber path string true "Application number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/dashboard/applications/{applicationNumber}/deny [put]
func (h *EnrollmentHandler) Deny(c *gin.Context) {
	app, err := h.enrollments.Decide(c.Request.Context(), c.Param("applicationNumber"), models.StatusDenied)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// ExportPending godoc
// @Summary Export pending applications
// @Tags Applications
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/dashboard/applications/export [get]
func (h *EnrollmentHandler) ExportPending(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.enrollments.ExportPending(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("pending-applications.%s", format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
