package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fitbooks-backend/internal/shared/middleware"
	"fitbooks-backend/internal/shared/response"
	"fitbooks-backend/pkg/container"
)

// =====================================================
// ROUTER SETUP
// =====================================================

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Stored review images are served under the same prefix their
	// references carry.
	router.GET("/uploads/*filepath", serveUpload(c))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck(c))

		products := v1.Group("/products")
		{
			products.GET("", c.ProductHandler.ListProducts)
			products.GET("/:id", c.ProductHandler.GetProduct)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("", c.ReviewHandler.CreateReview)
			reviews.GET("/product/:productId", c.ReviewHandler.ListByProduct)
			reviews.GET("/can-review/:productId/:username", c.ReviewHandler.CanReview)
		}

		v1.GET("/tags/popular", c.ReviewHandler.PopularTags)
	}

	return router
}

// =====================================================
// HEALTH CHECK
// =====================================================

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if c.Cache == nil || c.Cache.Ping(ctx.Request.Context()) != nil {
			cacheStatus = "down"
		}

		storageStatus := "up"
		if c.ImageService == nil {
			storageStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":    dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   c.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
				"storage":  storageStatus,
			},
		})
	}
}

// =====================================================
// UPLOADS
// =====================================================

func serveUpload(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.ImageService == nil {
			response.NotFound(ctx, "File not found")
			return
		}

		key := strings.TrimPrefix(ctx.Param("filepath"), "/")
		if key == "" || strings.Contains(key, "..") {
			response.NotFound(ctx, "File not found")
			return
		}

		data, contentType, err := c.ImageService.Open(ctx.Request.Context(), key)
		if err != nil {
			response.NotFound(ctx, "File not found")
			return
		}

		ctx.Data(http.StatusOK, contentType, data)
	}
}
