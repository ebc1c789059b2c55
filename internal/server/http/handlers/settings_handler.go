package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/server/http/dto"
)

const pickupDateLayout = "2006-01-02"

// SettingsHandler manages the store-wide settings record.
type SettingsHandler struct {
	facade SettingsFacade
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(facade SettingsFacade) *SettingsHandler {
	return &SettingsHandler{facade: facade}
}

// Get handles GET /api/admin/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings := h.facade.StoreSettings()
	if settings == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// Update handles PUT /api/admin/settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	pickupDate, err := time.Parse(pickupDateLayout, req.PickupDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pickup_date, want YYYY-MM-DD"})
		return
	}

	settings := &model.StoreSettings{
		PickupLocation: req.PickupLocation,
		PickupDate:     pickupDate,
		PickupTime:     req.PickupTime,
		PickupDaysInfo: req.PickupDaysInfo,
		StorePhone:     req.StorePhone,
		StoreEmail:     req.StoreEmail,
	}
	if err := h.facade.UpdateStoreSettings(c.Request.Context(), settings); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(h.facade.StoreSettings()))
}

func toSettingsResponse(s *model.StoreSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		PickupLocation: s.PickupLocation,
		PickupDate:     s.PickupDate.Format(pickupDateLayout),
		PickupTime:     s.PickupTime,
		PickupDaysInfo: s.PickupDaysInfo,
		StorePhone:     s.StorePhone,
		StoreEmail:     s.StoreEmail,
		UpdatedAt:      s.UpdatedAt,
	}
}
