package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/enrollment-api/internal/service"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/response"
)

// PaymentHandler exposes the payment ledger endpoints.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Record godoc
// @Summary Record a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	res, err := h.payments.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// HasPayment godoc
// @Summary Check whether a payment exists for an application
// @Tags Payments
// @Produce json
// @Param applicationId path string true "Application number"
// @Success 200 {object} response.Envelope
// @Router /payments/{applicationId} [get]
func (h *PaymentHandler) HasPayment(c *gin.Context) {
	paid, err := h.payments.HasPayment(c.Request.Context(), c.Param("applicationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"paid": paid}, nil)
}

// EnrolledCourses godoc
// @Summary List courses paid toward by the caller
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard/enrolled-courses [get]
func (h *PaymentHandler) EnrolledCourses(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courses, err := h.payments.ListEnrolledCourses(c.Request.Context(), claims.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}
