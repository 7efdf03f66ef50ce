package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/config"
	"github.com/burg1337/expense-tracker/middleware"
	"github.com/burg1337/expense-tracker/routes"
	"github.com/burg1337/expense-tracker/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	cacheStore := newCacheStore()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(
			c.Request.Method,
			c.Request.URL.Path,
			middleware.GetUserID(c),
			c.Writer.Status(),
			time.Since(start).String(),
		)
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, db)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupAnalyticsRoutes(protected, db, cacheStore)
			routes.SetupTransactionRoutes(protected, db, cacheStore)
			routes.SetupCategoryRoutes(protected, db, cacheStore)
			routes.SetupBudgetRoutes(protected, db, cacheStore)
			routes.SetupUserRoutes(protected, db)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// newCacheStore picks the in-process cache unless CACHE_DISABLED is set.
// Absence of a cache only costs latency, never correctness.
func newCacheStore() cache.Store {
	if os.Getenv("CACHE_DISABLED") == "true" {
		log.Println("⚠️  Cache disabled, analytics queries hit the store directly")
		return cache.Noop{}
	}

	memory := cache.NewMemory()
	memory.StartSweep(time.Minute)
	log.Println("✅ In-process cache enabled")
	return memory
}
