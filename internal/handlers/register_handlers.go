package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/posync/cmd/docs"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/SscSPs/posync/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	uploadLimiter, err := middleware.NewMemoryLimiter(cfg.UploadRateLimit)
	if err != nil {
		return fmt.Errorf("failed to configure upload rate limit: %w", err)
	}
	uploadLimit := middleware.GinMiddlewarize(uploadLimiter)

	v1 := r.Group("/api/v1")

	// Everything except session creation is scoped to the session named by X-Session-ID
	scoped := v1.Group("", middleware.RequireSession(service.Session))

	registerSessionRoutes(v1, scoped, service.Session)
	registerLineItemRoutes(scoped, service.Records)
	registerCashBalanceRoutes(scoped, service.Records)
	registerTransactionRoutes(scoped, service.Records)
	registerCapitalRoutes(scoped, service.Records)
	registerReconciliationRoutes(scoped, service.Reconciliation, cfg.CurrencySymbol)
	registerExportRoutes(scoped, service.Export, cfg.MaxUploadBytes, uploadLimit)
	registerComparisonRoutes(scoped, service.Comparison, cfg.MaxUploadBytes, uploadLimit)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
