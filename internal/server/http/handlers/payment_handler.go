package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kahenya/duka/internal/adapter/daraja"
	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/server/http/dto"
	"github.com/kahenya/duka/internal/usecase"
)

// PaymentHandler drives the push-payment flow: initiation, the provider
// reconciliation webhook and customer-side status polling.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initiate handles POST /api/payments/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	checkoutRequestID, err := h.facade.InitiatePayment(c.Request.Context(), CurrentSessionID(c), usecase.CustomerInfo{
		Name:            req.Name,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		var rejected daraja.RejectedError
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, domainErrors.ErrInvalidCheckout), errors.Is(err, domainErrors.ErrInvalidPhoneNumber), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &rejected):
			c.JSON(http.StatusBadGateway, gin.H{"error": rejected.Description})
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable, try again"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.InitiatePaymentResponse{
		CheckoutRequestID: checkoutRequestID,
		Message:           "payment request sent, check your phone",
	})
}

// Callback handles POST /api/payments/callback. The provider is always
// acknowledged; outcomes for unknown or already-settled attempts are
// dropped inside the facade.
func (h *PaymentHandler) Callback(c *gin.Context) {
	ack := dto.CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}

	result, err := daraja.ParseCallback(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, ack)
		return
	}

	h.facade.HandlePaymentCallback(c.Request.Context(), result)
	c.JSON(http.StatusOK, ack)
}

// Status handles GET /api/payments/status.
func (h *PaymentHandler) Status(c *gin.Context) {
	poll, err := h.facade.PollPayment(c.Request.Context(), CurrentSessionID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNoPendingPayment):
			c.JSON(http.StatusNotFound, gin.H{"error": "no payment in progress"})
		case errors.Is(err, domainErrors.ErrSnapshotExpired):
			c.JSON(http.StatusGone, gin.H{"error": "checkout expired, start again"})
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough stock"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusConflict, gin.H{"error": "product no longer available"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := dto.PaymentStatusResponse{
		Status:      string(poll.Status),
		Description: poll.Description,
	}
	if poll.Order != nil {
		order := toOrderResponse(poll.Order)
		resp.Order = &order
	}
	c.JSON(http.StatusOK, resp)
}
