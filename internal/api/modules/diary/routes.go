package diary

import (
	"github.com/gin-gonic/gin"

	diarysvc "github.com/ethanbaker/diary/internal/diary"
)

// RegisterRoutes registers the routes for the diary module
func RegisterRoutes(g *gin.RouterGroup, svc *diarysvc.Service) {
	g.POST("/analyze", postAnalyze(svc)) // Analyze and store a new diary entry
	g.GET("/history", getHistory(svc))   // List all stored entries, newest first
}
