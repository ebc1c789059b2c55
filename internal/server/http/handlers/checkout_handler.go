package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/server/http/dto"
	"github.com/kahenya/duka/internal/usecase"
)

// CheckoutHandler places cash-on-pickup orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// PlaceCashOrder handles POST /api/checkout/cash.
func (h *CheckoutHandler) PlaceCashOrder(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceCashOrder(c.Request.Context(), CurrentSessionID(c), usecase.CustomerInfo{
		Name:            req.Name,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, domainErrors.ErrInvalidCheckout), errors.Is(err, domainErrors.ErrInvalidPhoneNumber):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough stock"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusConflict, gin.H{"error": "product no longer available"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.TrackingResponse{
		Order:  toOrderResponse(order),
		Pickup: toPickupResponse(h.facade.StoreSettings()),
	})
}
