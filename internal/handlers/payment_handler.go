package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type PaymentHandler struct {
	BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
	}
}

// CreatePaymentIntent asks the payment gateway for a new intent and returns
// its client secret. Gateway failures surface to the client as 400 with the
// underlying message; they are never retried.
// @Summary Create payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} services.CreatePaymentIntentResponse
// @Failure 400 {object} ErrorResponse "Bad request or gateway failure"
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.paymentService.CreateIntent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "payment intent created", "amount", req.Amount)
	c.JSON(http.StatusOK, resp)
}
