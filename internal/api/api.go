package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/diary/internal/api/requestid"
	"github.com/ethanbaker/diary/internal/diary"
	"github.com/ethanbaker/diary/pkg/sdk"
	"github.com/ethanbaker/diary/pkg/utils"

	diary_module "github.com/ethanbaker/diary/internal/api/modules/diary"
	health_module "github.com/ethanbaker/diary/internal/api/modules/health"
)

// Start wires the diary service from configuration and runs the HTTP server
func Start(cfg *utils.Config) {
	svc, err := diary.NewService(cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize diary service: ", err)
	}

	engine := NewEngine(cfg, svc)

	port := cfg.GetWithDefault("API_PORT", "8080")
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// NewEngine builds the gin engine with all routes and middleware registered.
// Tests call this directly with a service built on fakes
func NewEngine(cfg *utils.Config, svc *diary.Service) *gin.Engine {
	engine := gin.Default()

	// Unknown routes and wrong methods both answer with the JSON error shape
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, sdk.ErrorResponse{Error: "Method Not Allowed"})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Not Found"})
	})

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Request IDs for log correlation
	engine.Use(requestid.New())

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	diary_module.RegisterRoutes(baseGroup, svc)

	return engine
}
