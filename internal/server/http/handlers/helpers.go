package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/server/http/dto"
	"github.com/kahenya/duka/internal/server/http/middleware"
)

// CurrentSessionID extracts the visitor session identifier from context.
func CurrentSessionID(c *gin.Context) string {
	val, ok := c.Get(middleware.SessionIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentStaffID extracts the authenticated staff identifier from context.
func CurrentStaffID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.StaffIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, dto.CartLineResponse{
			Key:       l.Key,
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return dto.CartResponse{Lines: lines, Total: cart.Total()}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		PhoneNumber:     order.PhoneNumber,
		Email:           order.Email,
		DeliveryAddress: order.DeliveryAddress,
		Status:          string(order.Status),
		Lines:           lines,
		Total:           order.Total(),
		TotalItems:      order.TotalItems(),
		CreatedAt:       order.CreatedAt,
	}
}

func toPickupResponse(settings *model.StoreSettings) *dto.PickupResponse {
	if settings == nil {
		return nil
	}
	pickup := settings.Pickup()
	return &dto.PickupResponse{
		Location: pickup.Location,
		Date:     pickup.Date,
		Time:     pickup.Time,
		Days:     pickup.Days,
	}
}
