package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/server/http/dto"
)

const financeDateLayout = "2006-01-02"

// FinanceHandler serves the budgeting and finance endpoints.
type FinanceHandler struct {
	facade FinanceFacade
}

// NewFinanceHandler constructs FinanceHandler.
func NewFinanceHandler(facade FinanceFacade) *FinanceHandler {
	return &FinanceHandler{facade: facade}
}

// Overview handles GET /api/finance/overview.
func (h *FinanceHandler) Overview(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	overview, err := h.facade.FinanceOverview(c.Request.Context(), year, month)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPeriod) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid budget month"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.FinanceOverviewResponse{
		Year:           overview.Year,
		Month:          overview.Month,
		Revenue:        overview.Revenue,
		COGS:           overview.COGS,
		GrossProfit:    overview.GrossProfit,
		ExpensesTotal:  overview.ExpensesTotal,
		NetProfit:      overview.NetProfit,
		CapitalIn:      overview.CapitalIn,
		CapitalOut:     overview.CapitalOut,
		ActiveAlerts:   toAlertResponses(overview.ActiveAlerts),
		RecentExpenses: toExpenseResponses(overview.RecentExpenses),
	}
	if overview.Budget != nil {
		budget := toBudgetResponse(overview.Budget)
		resp.Budget = &budget
	}
	c.JSON(http.StatusOK, resp)
}

// ListCategories handles GET /api/finance/categories.
func (h *FinanceHandler) ListCategories(c *gin.Context) {
	categories, err := h.facade.BudgetCategories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, toCategoryResponse(&cat))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory handles POST /api/finance/categories.
func (h *FinanceHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateBudgetCategory(c.Request.Context(), &model.BudgetCategory{
		Name:            req.Name,
		Icon:            req.Icon,
		Color:           req.Color,
		IsStockCategory: req.IsStockCategory,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidProduct):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "category name required"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(created))
}

// CreateBudget handles POST /api/finance/budgets.
func (h *FinanceHandler) CreateBudget(c *gin.Context) {
	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	allocations := make([]repository.AllocationInput, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, repository.AllocationInput{CategoryID: a.CategoryID, Amount: a.Amount})
	}

	budget, err := h.facade.CreateBudget(c.Request.Context(), &model.MonthlyBudget{
		Year:         req.Year,
		Month:        req.Month,
		TotalCapital: req.TotalCapital,
		Notes:        req.Notes,
	}, allocations)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "budget for this month already exists"})
		case errors.Is(err, domainErrors.ErrInvalidPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid budget month"})
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudget handles GET /api/finance/budgets/:year/:month.
func (h *FinanceHandler) GetBudget(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	budget, err := h.facade.Budget(c.Request.Context(), year, month)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidPeriod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid budget month"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// AddExpense handles POST /api/finance/expenses.
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	expense := &model.Expense{
		BudgetID:    req.BudgetID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		ReceiptNote: req.ReceiptNote,
	}
	if req.Date != "" {
		date, err := time.Parse(financeDateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		expense.Date = date
	}

	created, err := h.facade.AddExpense(c.Request.Context(), expense)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "budget or category not found"})
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toExpenseResponse(created))
}

// DeleteExpense handles DELETE /api/finance/expenses/:id.
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteExpense(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCapitalEntry handles POST /api/finance/capital.
func (h *FinanceHandler) AddCapitalEntry(c *gin.Context) {
	var req dto.CapitalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	entry := &model.CapitalEntry{
		BudgetID:    req.BudgetID,
		EntryType:   model.CapitalEntryType(req.EntryType),
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := time.Parse(financeDateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		entry.Date = date
	}

	created, err := h.facade.AddCapitalEntry(c.Request.Context(), entry)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.CapitalEntryResponse{
		ID:          created.ID,
		BudgetID:    created.BudgetID,
		EntryType:   string(created.EntryType),
		Amount:      created.Amount,
		Description: created.Description,
		Date:        created.Date,
	})
}

// ListRestockAlerts handles GET /api/finance/restock-alerts.
func (h *FinanceHandler) ListRestockAlerts(c *gin.Context) {
	h.facade.SyncRestockAlerts(c.Request.Context())
	alerts, err := h.facade.RestockAlerts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toAlertResponses(alerts))
}

// DismissRestockAlert handles POST /api/finance/restock-alerts/:id/dismiss.
func (h *FinanceHandler) DismissRestockAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DismissRestockAlert(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func toCategoryResponse(cat *model.BudgetCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:              cat.ID,
		Name:            cat.Name,
		Icon:            cat.Icon,
		Color:           cat.Color,
		IsStockCategory: cat.IsStockCategory,
	}
}

func toBudgetResponse(b *model.MonthlyBudget) dto.BudgetResponse {
	allocations := make([]dto.AllocationResponse, 0, len(b.Allocations))
	for _, a := range b.Allocations {
		allocations = append(allocations, dto.AllocationResponse{
			ID:              a.ID,
			CategoryID:      a.CategoryID,
			CategoryName:    a.CategoryName,
			AllocatedAmount: a.AllocatedAmount,
			SpentAmount:     a.SpentAmount,
			Remaining:       a.Remaining(),
			PercentUsed:     a.PercentUsed(),
			OverBudget:      a.OverBudget(),
		})
	}
	return dto.BudgetResponse{
		ID:                 b.ID,
		Year:               b.Year,
		Month:              b.Month,
		Label:              b.Label(),
		TotalCapital:       b.TotalCapital,
		TotalAllocated:     b.TotalAllocated(),
		TotalSpent:         b.TotalSpent(),
		Unallocated:        b.Unallocated(),
		Remaining:          b.Remaining(),
		UtilizationPercent: b.UtilizationPercent(),
		Notes:              b.Notes,
		Allocations:        allocations,
	}
}

func toExpenseResponse(e *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:           e.ID,
		BudgetID:     e.BudgetID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Amount:       e.Amount,
		Description:  e.Description,
		Date:         e.Date,
		ReceiptNote:  e.ReceiptNote,
	}
}

func toExpenseResponses(expenses []model.Expense) []dto.ExpenseResponse {
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, toExpenseResponse(&expenses[i]))
	}
	return resp
}

func toAlertResponses(alerts []model.RestockAlert) []dto.RestockAlertResponse {
	resp := make([]dto.RestockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, dto.RestockAlertResponse{
			ID:                   a.ID,
			ProductID:            a.ProductID,
			ProductName:          a.ProductName,
			QtyAtAlert:           a.QtyAtAlert,
			EstimatedRestockCost: a.EstimatedRestockCost,
			CreatedAt:            a.CreatedAt,
		})
	}
	return resp
}
