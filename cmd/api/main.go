package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchant-api/internal/config"
	"merchant-api/internal/database"
	"merchant-api/internal/handlers"
	"merchant-api/internal/repository"
	"merchant-api/pkg/logger"
	"merchant-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "merchant-api/docs" // Swagger docs
)

// @title           Merchant API
// @version         1.0
// @description     JSON API for querying and mutating merchant and item records, with item search and cascading item deletes.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting Merchant API",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("SQLite Configuration",
		zap.String("path", cfg.SQLitePath),
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open database and build the store
	db, err := database.Open(cfg.SQLitePath)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	store := repository.NewSQLiteStore(db)

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	itemsHandler := handlers.NewItemsHandler(appLogger, store)
	merchantsHandler := handlers.NewMerchantsHandler(appLogger, store)

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		items := v1.Group("/items")
		{
			items.GET("", itemsHandler.ListItems)
			items.GET("/find", itemsHandler.FindItem)
			items.GET("/:id", itemsHandler.GetItem)
			items.POST("", itemsHandler.CreateItem)
			items.PUT("/:id", itemsHandler.UpdateItem)
			items.DELETE("/:id", itemsHandler.DeleteItem)
			items.GET("/:id/merchant", itemsHandler.GetItemMerchant)
		}

		merchants := v1.Group("/merchants")
		{
			merchants.GET("", merchantsHandler.ListMerchants)
			merchants.GET("/find_all", merchantsHandler.FindAllMerchants)
			merchants.GET("/:id", merchantsHandler.GetMerchant)
			merchants.GET("/:id/items", merchantsHandler.GetMerchantItems)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "merchant-api",
	})
}
