package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Public markup endpoints
	r.GET("/embed/:slug", handler.GetEmbed)
	r.GET("/organization", handler.GetOrganization)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)

	// API endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.POST("/test-schema", handler.TestSchema)
			api.POST("/validate-schema", handler.ValidateSchema)
			api.POST("/analyze-content", handler.AnalyzeContent)
			api.POST("/competitor-analysis", handler.CompetitorAnalysis)
			api.GET("/analytics", handler.GetAnalytics)
			api.POST("/optimize-site", handler.OptimizeSite)
			api.POST("/bulk-optimize", handler.BulkOptimize)
			api.POST("/fix-errors", handler.FixErrors)
			api.POST("/generate-sitemap", handler.GenerateSitemap)
			api.POST("/send-report", handler.SendReport)
			api.GET("/export-data", handler.ExportData)
			api.GET("/settings", handler.GetSettings)
			api.PUT("/settings", handler.UpdateSettings)
		}
		log.Printf("API endpoints enabled with authentication")
	} else {
		log.Printf("API endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"embed":        "/embed/<slug>",
			"organization": "/organization",
			"health":       "/health",
		}

		// Add API endpoints if authentication is enabled
		if apiAccessKey != "" {
			endpoints["test-schema"] = "/api/test-schema (POST, requires X-API-Key header)"
			endpoints["validate-schema"] = "/api/validate-schema (POST, requires X-API-Key header)"
			endpoints["analyze-content"] = "/api/analyze-content (POST, requires X-API-Key header)"
			endpoints["competitor-analysis"] = "/api/competitor-analysis (POST, requires X-API-Key header)"
			endpoints["analytics"] = "/api/analytics (requires X-API-Key header)"
			endpoints["optimize-site"] = "/api/optimize-site (POST, requires X-API-Key header)"
			endpoints["bulk-optimize"] = "/api/bulk-optimize (POST, requires X-API-Key header)"
			endpoints["fix-errors"] = "/api/fix-errors (POST, requires X-API-Key header)"
			endpoints["generate-sitemap"] = "/api/generate-sitemap (POST, requires X-API-Key header)"
			endpoints["send-report"] = "/api/send-report (POST, requires X-API-Key header)"
			endpoints["export-data"] = "/api/export-data (requires X-API-Key header)"
			endpoints["settings"] = "/api/settings (GET/PUT, requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "SchemaPress",
			"description": "Structured data generator with validation, SEO scoring, and AI search optimization",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// Check if API key is provided and matches
		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		// Continue to next middleware/handler
		c.Next()
	}
}
