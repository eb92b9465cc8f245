package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"food-order-api/config"
	"food-order-api/payments"
	"food-order-api/routes"
	"food-order-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	config.InitDB(cfg.DBPath)
	payments.Init()
	if err := storage.Init(context.Background()); err != nil {
		config.Log.Fatalw("image storage init failed", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS for the storefront origin; cookies require credentials
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.FrontendURL)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "food-order-api"})
	})

	routes.SetupRoutes(r)

	// Serve the built single-page client; unknown non-API paths fall
	// back to index.html for client-side routing.
	if _, err := os.Stat(cfg.ClientDist); err == nil {
		r.Static("/assets", filepath.Join(cfg.ClientDist, "assets"))
		r.StaticFile("/", filepath.Join(cfg.ClientDist, "index.html"))
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
				return
			}
			c.File(filepath.Join(cfg.ClientDist, "index.html"))
		})
	}

	config.Log.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		config.Log.Fatalw("server failed", "error", err)
	}
}
