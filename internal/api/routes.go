package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/comps-mao-pipeline/internal/compsource"
	"github.com/ajharbinger/comps-mao-pipeline/internal/report"
	"github.com/ajharbinger/comps-mao-pipeline/internal/services"
	"github.com/ajharbinger/comps-mao-pipeline/internal/verify"
	"github.com/ajharbinger/comps-mao-pipeline/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, cfg *config.Config) error {
	source, err := compsource.NewService(cfg)
	if err != nil {
		return fmt.Errorf("failed to create comp source: %w", err)
	}

	renderer := report.NewChromiumRenderer(cfg.ReportDir, cfg.ChromePath)
	compService := services.NewCompPacketService(source, verify.NewPendingVerifier(), renderer)

	compsHandler := NewCompsHandler(compService)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/comps/run", compsHandler.RunComps)
		v1.GET("/health", compsHandler.Health)
	}

	return nil
}
