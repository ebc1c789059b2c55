package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/server/http/dto"
	"github.com/kahenya/duka/internal/usecase"
)

// ReportHandler serves the admin reporting endpoints.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalRevenue:      stats.TotalRevenue,
		TotalOrders:       stats.TotalOrders,
		AverageOrderValue: stats.AverageOrderValue,
		TotalProducts:     stats.TotalProducts,
	})
}

// Summary handles GET /api/admin/reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	period := c.DefaultQuery("period", usecase.PeriodAll)
	summary, err := h.facade.SalesSummary(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPeriod) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown period"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.SalesSummaryResponse{
		Period:            summary.Period,
		TotalSales:        summary.TotalSales,
		TotalOrders:       summary.TotalOrders,
		TotalItems:        summary.TotalItems,
		AverageOrderValue: summary.AverageOrderValue,
	})
}

// Daily handles GET /api/admin/reports/daily.
func (h *ReportHandler) Daily(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	buckets, err := h.facade.DailySales(c.Request.Context(), days)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toBucketResponses(buckets))
}

// Monthly handles GET /api/admin/reports/monthly.
func (h *ReportHandler) Monthly(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))
	buckets, err := h.facade.MonthlySales(c.Request.Context(), months)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toBucketResponses(buckets))
}

// TopProducts handles GET /api/admin/reports/top-products.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	stats, err := h.facade.TopProducts(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ProductStatsResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, dto.ProductStatsResponse{
			ProductID:    s.ProductID,
			ProductName:  s.ProductName,
			TotalSold:    s.TotalSold,
			TotalRevenue: s.TotalRevenue,
			LastSoldAt:   s.LastSoldAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toBucketResponses(buckets []model.SalesBucket) []dto.SalesBucketResponse {
	resp := make([]dto.SalesBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, dto.SalesBucketResponse{
			Bucket:     b.Bucket,
			TotalSales: b.TotalSales,
			OrderCount: b.OrderCount,
		})
	}
	return resp
}
