package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kahenya/duka/internal/server/http/handlers"
	"github.com/kahenya/duka/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)
	settingsHandler := handlers.NewSettingsHandler(facade)
	financeHandler := handlers.NewFinanceHandler(facade)

	api := engine.Group("/api")

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/track", orderHandler.Track)

	// The provider callback carries no visitor session.
	api.POST("/payments/callback", paymentHandler.Callback)

	session := api.Group("")
	session.Use(middleware.VisitorSession())
	session.GET("/cart", cartHandler.Get)
	session.POST("/cart", cartHandler.Add)
	session.PUT("/cart/:key", cartHandler.Update)
	session.DELETE("/cart/:key", cartHandler.Remove)
	session.DELETE("/cart", cartHandler.Clear)
	session.POST("/checkout/cash", checkoutHandler.PlaceCashOrder)
	session.POST("/payments/initiate", paymentHandler.Initiate)
	session.GET("/payments/status", paymentHandler.Status)

	staff := api.Group("/staff")
	staff.POST("/register", authHandler.Register)
	staff.POST("/login", authHandler.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.StaffRequired(facade))
	admin.GET("/dashboard", reportHandler.Dashboard)
	admin.GET("/orders", orderHandler.List)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/products", catalogHandler.Create)
	admin.PUT("/products/:id", catalogHandler.Update)
	admin.DELETE("/products/:id", catalogHandler.Delete)
	admin.GET("/reports/summary", reportHandler.Summary)
	admin.GET("/reports/daily", reportHandler.Daily)
	admin.GET("/reports/monthly", reportHandler.Monthly)
	admin.GET("/reports/top-products", reportHandler.TopProducts)
	admin.GET("/settings", settingsHandler.Get)
	admin.PUT("/settings", settingsHandler.Update)

	finance := api.Group("/finance")
	finance.Use(middleware.StaffRequired(facade))
	finance.GET("/overview", financeHandler.Overview)
	finance.GET("/categories", financeHandler.ListCategories)
	finance.POST("/categories", financeHandler.CreateCategory)
	finance.POST("/budgets", financeHandler.CreateBudget)
	finance.GET("/budgets/:year/:month", financeHandler.GetBudget)
	finance.POST("/expenses", financeHandler.AddExpense)
	finance.DELETE("/expenses/:id", financeHandler.DeleteExpense)
	finance.POST("/capital", financeHandler.AddCapitalEntry)
	finance.GET("/restock-alerts", financeHandler.ListRestockAlerts)
	finance.POST("/restock-alerts/:id/dismiss", financeHandler.DismissRestockAlert)

	return engine
}
