package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/scholarship-portal-api/api/swagger"
	"github.com/noah-isme/scholarship-portal-api/internal/handler"
	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/repository"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/cache"
	"github.com/noah-isme/scholarship-portal-api/pkg/config"
	"github.com/noah-isme/scholarship-portal-api/pkg/database"
	"github.com/noah-isme/scholarship-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scholarship-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scholarship-portal-api/pkg/middleware/requestid"
)

// @title Scholarship Portal API
// @version 1.0.0
// @description Application portal for a summer scholarship program
// @BasePath /api/v1
// @schemes https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	stateRepo := repository.NewOAuthStateRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, stateRepo, nil, logr, service.AuthConfig{
		ClientID:      cfg.Google.ClientID,
		ClientSecret:  cfg.Google.ClientSecret,
		RedirectURL:   cfg.Google.RedirectURL,
		StateTTL:      cfg.Google.StateTTL,
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
	})
	rosterSvc := service.NewRosterService(rosterRepo, userRepo, validate, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, userRepo, validate, logr, cfg.Portal.FailOpen)
	applicationSvc := service.NewApplicationService(applicationRepo, userRepo, settingsSvc, validate, logr)
	reviewSvc := service.NewReviewService(applicationRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(applicationRepo, rosterRepo, userRepo, validate, logr)
	exportSvc := service.NewExportService(applicationRepo, userRepo, logr)
	maintenanceSvc := service.NewMaintenanceService(applicationRepo, userRepo, rosterRepo, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session.CookieName, cfg.Session.Secure, cfg.Portal.DashboardURL)
	applicationHandler := handler.NewApplicationHandler(applicationSvc, metricsSvc, cfg.Portal.DashboardURL)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, metricsSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	session := middleware.Session(authSvc, cfg.Session.CookieName)

	v1 := r.Group(cfg.APIPrefix)
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/google", authHandler.Login)
			auth.GET("/callback", authHandler.Callback)
			auth.POST("/logout", authHandler.Logout)
		}

		v1.GET("/settings", settingsHandler.Status)

		applications := v1.Group("/applications", session)
		{
			applications.GET("/me", applicationHandler.Me)
			applications.PUT("/draft", applicationHandler.SaveDraft)
			applications.DELETE("/draft", applicationHandler.DeleteDraft)
			applications.POST("/submit", applicationHandler.Submit)
		}

		admin := v1.Group("/admin", session, middleware.RequireAdmin(rosterSvc))
		{
			admin.GET("/export/csv", exportHandler.SubmissionsCSV)
			admin.GET("/roster", rosterHandler.List)
			admin.POST("/roster/reviewers", rosterHandler.AddReviewer)
			admin.DELETE("/roster/admins/:email", rosterHandler.RemoveAdmin)
			admin.POST("/assignments", assignmentHandler.Assign)
			admin.POST("/assignments/auto", assignmentHandler.AutoAssign)
			admin.POST("/assignments/unassign-all",
				middleware.Audit(userRepo, models.AuditActionUnassignAll, "assignments"),
				assignmentHandler.UnassignAll)
			admin.PUT("/settings", settingsHandler.Toggle)
			admin.POST("/wipe", maintenanceHandler.Wipe)
		}

		reviews := v1.Group("/admin", session, middleware.RequirePrivileged(rosterSvc))
		{
			reviews.GET("/applications/:id/pdf", exportHandler.ApplicationPDF)
			reviews.PATCH("/reviews/:id/status", reviewHandler.UpdateStatus)
			reviews.PUT("/reviews/:id", reviewHandler.SaveReview)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
