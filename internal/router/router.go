// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DBN92/solve-it-neat/internal/authz"
	"github.com/DBN92/solve-it-neat/internal/config"
	"github.com/DBN92/solve-it-neat/internal/handlers"
	"github.com/DBN92/solve-it-neat/internal/metrics"
	"github.com/DBN92/solve-it-neat/internal/middleware"
	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

func Initialize(st store.Store, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	authService := services.NewAuthService(st, cfg)
	consentService := services.NewConsentService(st)
	userService := services.NewUserService(st)
	applicantService := services.NewApplicantService(st)
	reportService := services.NewReportService(st)
	exportService, err := services.NewExportService(st, cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	consentHandler := handlers.NewConsentHandler(consentService)
	dataOwnerHandler := handlers.NewDataOwnerHandler(consentService)
	userHandler := handlers.NewUserHandler(userService)
	applicantHandler := handlers.NewApplicantHandler(applicantService)
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := st.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"backend": cfg.Storage.Backend,
			"version": "1.0.0",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Data-owner portal. CPF lookup is the entry point for the
		// titular, who may not have an account; decisions stay behind
		// the lookup rate limit.
		dataOwner := v1.Group("/data-owner")
		dataOwner.Use(middleware.LookupRateLimit())
		{
			dataOwner.GET("/consents", dataOwnerHandler.Lookup)
			dataOwner.POST("/consents/:id/approve", consentHandler.Approve)
			dataOwner.POST("/consents/:id/reject", consentHandler.Reject)
			dataOwner.POST("/consents/:id/revoke", consentHandler.Revoke)
		}

		// Staff routes
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			consents := protected.Group("/consents")
			consents.Use(middleware.SectionRequired(authz.SectionConsents))
			{
				consents.GET("", consentHandler.List)
				consents.GET("/:id", consentHandler.Get)
				consents.GET("/:id/history", consentHandler.History)
				consents.POST("/:id/approve", consentHandler.Approve)
				consents.POST("/:id/reject", consentHandler.Reject)
				consents.POST("/:id/revoke", consentHandler.Revoke)
			}

			newRequest := protected.Group("")
			newRequest.Use(middleware.SectionRequired(authz.SectionNewRequest))
			{
				newRequest.POST("/consents", consentHandler.Create)
				newRequest.GET("/applicants/selectable", applicantHandler.Selectable)
			}

			applicants := protected.Group("/applicants")
			applicants.Use(middleware.SectionRequired(authz.SectionApplicant))
			{
				applicants.GET("", applicantHandler.List)
				applicants.GET("/:id", applicantHandler.Get)
				applicants.POST("", applicantHandler.Create)
				applicants.PUT("/:id", applicantHandler.Update)
				applicants.POST("/:id/deactivate", applicantHandler.Deactivate)
				applicants.POST("/:id/reactivate", applicantHandler.Reactivate)
			}

			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.SectionRequired(authz.SectionDashboard))
			{
				dashboard.GET("", reportHandler.Dashboard)
			}

			reports := protected.Group("/reports")
			reports.Use(middleware.SectionRequired(authz.SectionReports))
			{
				reports.GET("", reportHandler.Report)
			}

			users := protected.Group("/users")
			users.Use(middleware.SectionRequired(authz.SectionUsers))
			{
				users.GET("", userHandler.List)
				users.GET("/:id", userHandler.Get)
				users.POST("", userHandler.Create)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Delete)
			}

			admin := protected.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("/export", exportHandler.Export)
				admin.POST("/import", exportHandler.Import)
			}
		}
	}

	return r, nil
}
