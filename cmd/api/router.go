package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.LoadHTMLGlob("web/templates/*.html")

	// Server-rendered pages
	router.GET("/", c.Pages.Home)
	router.GET("/books", c.Pages.Books)
	router.GET("/readers", c.Pages.Readers)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupBookRoutes(api, c)
		setupReaderRoutes(api, c)
		setupLoanRoutes(api, c)
		setupCopyRoutes(api, c)
		setupDashboardRoutes(api, c)
	}

	return router
}

func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.POST("/", c.BookHandler.AddBook)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
		books.GET("/:id/copies", c.BookHandler.ListCopies)
	}
}

func setupReaderRoutes(api *gin.RouterGroup, c *container.Container) {
	readers := api.Group("/readers")
	{
		readers.POST("/", c.ReaderHandler.AddReader)
		readers.GET("/:id", c.ReaderHandler.GetReader)
		readers.PUT("/:id", c.ReaderHandler.UpdateReader)
		readers.DELETE("/:id", c.ReaderHandler.DeleteReader)
	}
}

func setupLoanRoutes(api *gin.RouterGroup, c *container.Container) {
	loans := api.Group("/loans")
	{
		loans.POST("/", c.LoanHandler.Checkout)
		loans.POST("/:id/return", c.LoanHandler.Return)
		loans.GET("/active", c.LoanHandler.ListActiveLoans)
	}
}

func setupCopyRoutes(api *gin.RouterGroup, c *container.Container) {
	copies := api.Group("/copies")
	{
		copies.POST("/:id/write-off", c.LoanHandler.WriteOffCopy)
		copies.POST("/:id/lost", c.LoanHandler.MarkCopyLost)
	}
}

func setupDashboardRoutes(api *gin.RouterGroup, c *container.Container) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", c.StatsHandler.GetDashboardStats)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis is advisory only, it never fails the health check.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
