// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/softrack/avcatalog-backend/internal/config"
	"github.com/softrack/avcatalog-backend/internal/handlers"
	"github.com/softrack/avcatalog-backend/internal/middleware"
	"github.com/softrack/avcatalog-backend/internal/repository"
	"github.com/softrack/avcatalog-backend/internal/services"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	softwareRepo := repository.NewSoftwareRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)

	store, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	audit := services.NewAuditService(cfg)

	softwareService := services.NewSoftwareService(softwareRepo, appRepo, licenseRepo, store)
	appService := services.NewApplicationService(appRepo, softwareRepo, licenseRepo, store)
	licenseService := services.NewLicenseService(licenseRepo, appRepo)

	softwareHandler := handlers.NewSoftwareHandler(softwareService, audit)
	appHandler := handlers.NewApplicationHandler(appService, audit)
	licenseHandler := handlers.NewLicenseHandler(licenseService, audit)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Stored logos are served straight from disk in development; a CDN
	// fronts the bucket everywhere else.
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	software := r.Group("/software")
	{
		software.GET("", softwareHandler.List)
		software.GET("/:id", softwareHandler.Get)

		software.POST("", middleware.AuthRequired(), middleware.AdminRequired(),
			middleware.UploadRateLimit(), softwareHandler.Create)
		software.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.Update)
		software.PUT("/logo/:id", middleware.AuthRequired(), middleware.AdminRequired(),
			middleware.UploadRateLimit(), softwareHandler.UpdateLogo)
		software.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), softwareHandler.Delete)
	}

	application := r.Group("/application")
	{
		// Admins get raw license lists on the collection read, so the
		// gate is optional rather than absent.
		application.GET("", middleware.OptionalAuth(), appHandler.List)
		application.GET("/:id", appHandler.Get)
		application.GET("/software/:id", appHandler.ListBySoftware)

		application.POST("", middleware.AuthRequired(), middleware.AdminRequired(),
			middleware.UploadRateLimit(), appHandler.Create)
		application.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.Update)
		application.PUT("/logo/:id", middleware.AuthRequired(), middleware.AdminRequired(),
			middleware.UploadRateLimit(), appHandler.UpdateLogo)
		application.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), appHandler.Delete)
	}

	license := r.Group("/license")
	{
		license.GET("", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.List)
		license.GET("/:id", middleware.AuthRequired(), licenseHandler.Get)
		license.GET("/application/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.ListByApplication)

		license.POST("", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Create)
		license.PUT("/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Update)
		license.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Delete)

		// Selling only needs a valid login; any authenticated user can
		// close a sale. Credit and re-stocking stay admin-only.
		license.PUT("/sell/:id", middleware.AuthRequired(), licenseHandler.Sell)
		license.PUT("/credit/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Credit)
		license.PUT("/avail/:id", middleware.AuthRequired(), middleware.AdminRequired(), licenseHandler.Avail)
	}

	return r, nil
}
