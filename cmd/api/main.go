package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrymarket/backend/config"
	"github.com/pantrymarket/backend/internal/api"
	"github.com/pantrymarket/backend/internal/database"
	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/router"
	"github.com/pantrymarket/backend/internal/server"
	"github.com/pantrymarket/backend/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}

	emailService := service.NewEmailService(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.FromEmail, cfg.FromName, log,
	)
	sessions := service.NewRedisSessionStore(redisClient)
	authService := service.NewAuthService(db, sessions, cfg.JWTSecret, emailService, log)
	catalogService := service.NewCatalogService(db, cfg.CascadeDelete)
	reportService := service.NewReportService(db)
	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db)

	engine := router.Setup(router.Handlers{
		Auth:           api.NewAuthHandler(authService),
		Catalog:        api.NewCatalogHandler(catalogService),
		Reports:        api.NewReportHandler(reportService),
		Recipes:        api.NewRecipeHandler(recipeService, userService, emailService),
		Users:          api.NewUserHandler(userService, recipeService),
		AuthService:    authService,
		MutationLimits: middleware.NewRecipeMutationRateLimiter(redisClient),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	srv := server.New(engine, addr, log)
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
}
