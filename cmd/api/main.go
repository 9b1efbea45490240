package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"civicconnect/internal/config"
	"civicconnect/internal/database"
	"civicconnect/internal/middleware"
	"civicconnect/internal/modules/admin"
	"civicconnect/internal/modules/auth"
	"civicconnect/internal/modules/contribution"
	"civicconnect/internal/modules/dashboard"
	"civicconnect/internal/modules/draft"
	"civicconnect/internal/modules/geo"
	"civicconnect/internal/modules/media"
	"civicconnect/internal/modules/profile"
	"civicconnect/internal/modules/report"
	jwtsvc "civicconnect/internal/pkg/jwt"
	rediscli "civicconnect/internal/redis"
	"civicconnect/internal/repository"
	"civicconnect/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	rdb, err := rediscli.Connect(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	tokens := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL)

	mediaService, err := media.NewService(cfg.UploadsDir)
	if err != nil {
		log.Fatal(err)
	}

	draftStore := draft.NewRedisStore(rdb, cfg.SessionTTL)
	draftService := draft.NewService(draftStore, mediaService)

	var googleClient *auth.GoogleClient
	if cfg.GoogleOAuthEnabled() {
		googleClient = auth.NewGoogleClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		log.Print("google oauth not configured, /auth/google disabled")
	}

	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService, sessions, tokens, googleClient, cfg.SessionTTL)

	reportService := report.NewService(reportRepo, mediaService, draftService)
	reportHandler := report.NewHandler(reportService)

	contributionService := contribution.NewService(contributionRepo, reportRepo, mediaService)
	contributionHandler := contribution.NewHandler(contributionService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	geoHandler := geo.NewHandler("")

	dashboardService := dashboard.NewService(reportRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	adminService := admin.NewService(reportRepo, contributionRepo, settingRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.Static("/uploads", cfg.UploadsDir)

	root := r.Group("/")
	{
		// public
		authHandler.RegisterRoutes(root)
		geoHandler.RegisterRoutes(root)

		// session-gated
		protected := root.Group("/")
		protected.Use(middleware.SessionAuth(tokens, sessions))
		{
			reportHandler.RegisterRoutes(protected)
			contributionHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
