package handlers

import (
	"fmt"
	"net/http"

	"github.com/velotrack/velotrack_backend/cmd/docs"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"
	"github.com/velotrack/velotrack_backend/internal/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return fmt.Errorf("failed to register validators: %w", err)
		}
	}

	loginLimiter, err := middleware.NewIPLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("failed to create login rate limiter: %w", err)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Locally stored PDFs are served under the public base URL's /files path.
	if cfg.StorageDriver == config.StorageLocal {
		r.Static("/files", cfg.StorageLocalDir)
	}

	auth := r.Group("/api/v1/auth")

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAuthRoutes(auth, v1, middleware.RateLimit(loginLimiter), services)
	setupAPIV1Routes(v1, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes delegates to specific entity route registrations
func setupAPIV1Routes(v1 *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerLeadRoutes(v1, service.Lead, service.Converter)
	registerProjectRoutes(v1, service.Project)
	registerReportingRoutes(v1, service.Reporting)
	registerSettingsRoutes(v1, service.Settings)
	registerUserRoutes(v1, service.User)

	owner := v1.Group("", middleware.OwnerOnly())
	registerFinanceRoutes(owner, service.Finance)
	registerDocumentRoutes(owner, service.Document, service.Notification)
	registerAuditRoutes(owner, service.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
