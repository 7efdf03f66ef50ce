package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/handlers"
	"github.com/burg1337/expense-tracker/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupAnalyticsRoutes sets up protected analytics routes.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *sql.DB, cacheStore cache.Store) {
	store := services.NewPostgresAnalyticsStore(db)
	h := handlers.NewAnalyticsHandler(services.NewAnalyticsService(store, cacheStore))

	rg.GET("/analytics/summary", h.GetSummary)
	rg.GET("/analytics/spending-by-category", h.GetSpendingByCategory)
	rg.GET("/analytics/income-by-category", h.GetIncomeByCategory)
	rg.GET("/analytics/monthly-trend", h.GetMonthlyTrend)
}

// SetupTransactionRoutes sets up protected transaction CRUD routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, cacheStore cache.Store) {
	h := handlers.NewTransactionHandler(services.NewTransactionService(db, cacheStore))

	rg.POST("/transactions", h.Create)
	rg.GET("/transactions", h.List)
	rg.GET("/transactions/:id", h.Get)
	rg.PUT("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
}

// SetupCategoryRoutes sets up protected category CRUD routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB, cacheStore cache.Store) {
	h := handlers.NewCategoryHandler(services.NewCategoryService(db, cacheStore))

	rg.POST("/categories", h.Create)
	rg.GET("/categories", h.List)
	rg.GET("/categories/:id", h.Get)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

// SetupBudgetRoutes sets up protected budget CRUD and status routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB, cacheStore cache.Store) {
	h := handlers.NewBudgetHandler(services.NewBudgetService(db, cacheStore))

	rg.POST("/budgets", h.Create)
	rg.GET("/budgets", h.List)
	rg.GET("/budgets/:id", h.Get)
	rg.GET("/budgets/:id/status", h.GetStatus)
	rg.PUT("/budgets/:id", h.Update)
	rg.DELETE("/budgets/:id", h.Delete)
}

// SetupUserRoutes sets up protected user profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}
