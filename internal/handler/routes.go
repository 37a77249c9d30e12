package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter echo.MiddlewareFunc, prestationHandler *PrestationHandler, expenseHandler *ExpenseHandler, receiptHandler *ReceiptHandler, dashboardHandler *DashboardHandler, calendarHandler *CalendarHandler, categoryHandler *CategoryHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	if rateLimiter != nil {
		api.Use(rateLimiter)
	}

	// Prestation routes
	prestations := api.Group("/prestations")
	prestations.POST("", prestationHandler.CreatePrestation)
	prestations.GET("", prestationHandler.GetPrestations)
	prestations.GET("/:id", prestationHandler.GetPrestation)
	prestations.PUT("/:id", prestationHandler.UpdatePrestation)
	prestations.DELETE("/:id", prestationHandler.DeletePrestation)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Receipt routes
	expenses.POST("/:id/receipt", receiptHandler.UploadReceipt)
	expenses.GET("/:id/receipt", receiptHandler.GetReceiptURL)
	expenses.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/chart", dashboardHandler.GetChart)
	dashboard.GET("/navigate", dashboardHandler.Navigate)
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Calendar routes
	api.GET("/calendar/days", calendarHandler.GetDailyStats)

	// Category routes
	api.GET("/categories", categoryHandler.GetCategories)
}
