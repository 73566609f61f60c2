package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/pollapp-api/internal/config"
	"github.com/yourusername/pollapp-api/internal/handler"
	"github.com/yourusername/pollapp-api/internal/middleware"
	pgRepo "github.com/yourusername/pollapp-api/internal/repository/postgres"
	"github.com/yourusername/pollapp-api/internal/service"
	"github.com/yourusername/pollapp-api/pkg/auth"
	"github.com/yourusername/pollapp-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis нужен только для rate limiting; без него лимитер пропускает все запросы
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled() {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = database.NewUniversalRedisClient(pingCtx, cfg.Redis)
		pingCancel()
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")
	} else {
		log.Println("Redis не настроен, rate limiting отключен")
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration())
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	competitionRepo := pgRepo.NewCompetitionRepo(db)
	participantRepo := pgRepo.NewParticipantRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	var notifier service.ParticipantNotifier = &service.NoopNotifier{}
	if cfg.Email.Enabled {
		resendNotifier, err := service.NewResendNotifier(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email notifier: %v", err)
			os.Exit(1)
		}
		notifier = resendNotifier
	}

	// Сервисы
	authService := service.NewAuthService(userRepo, jwtService, cfg.Auth)
	userService := service.NewUserService(userRepo)
	competitionService := service.NewCompetitionService(competitionRepo, participantRepo, userRepo, notifier)
	participantService := service.NewParticipantService(participantRepo, competitionRepo)
	scoreService := service.NewScoreService(scoreRepo, participantRepo, competitionRepo)

	// Обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	competitionHandler := handler.NewCompetitionHandler(competitionService, scoreService)
	participantHandler := handler.NewParticipantHandler(participantService)
	scoreHandler := handler.NewScoreHandler(scoreService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// Пустой список означает любой origin; cors.New паникует без источников
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.AuthRateLimitConfig(cfg.Auth.RateLimit.MaxRequests, cfg.Auth.RateLimit.WindowSeconds)))
		{
			authGroup.POST("/", authHandler.Register)
			authGroup.POST("/token", authHandler.Token)
		}

		users := api.Group("/user")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/", userHandler.Me)
			users.GET("/all", userHandler.List)
			users.PUT("/change-password", userHandler.ChangePassword)
		}

		competitions := api.Group("/competitions")
		competitions.Use(authMiddleware.RequireAuth())
		{
			competitions.POST("/create", competitionHandler.Create)
			competitions.GET("/", competitionHandler.ListForUser)
			competitions.GET("/all", competitionHandler.ListAll)

			competitionWithID := competitions.Group("/:id")
			competitionWithID.Use(middleware.ExtractUintParam("id", "competitionID"))
			{
				competitionWithID.GET("", competitionHandler.Get)
				competitionWithID.POST("/participant/add", competitionHandler.AddParticipants)
				competitionWithID.GET("/scores", competitionHandler.Scores)
				competitionWithID.GET("/scores/export", competitionHandler.ExportScores)
			}

			participants := competitions.Group("/participant")
			{
				participants.GET("/", participantHandler.List)
				participants.DELETE("/:id", middleware.ExtractUintParam("id", "participantID"), participantHandler.Delete)

				scores := participants.Group("/score")
				{
					scores.GET("/", authMiddleware.AdminOnly(), scoreHandler.List)
					scores.POST("/create/:comp_id/:scored_id",
						middleware.ExtractUintParam("comp_id", "competitionID"),
						middleware.ExtractUintParam("scored_id", "scoredID"),
						scoreHandler.Create)
					scores.POST("/bulk-create/:competition_id",
						middleware.ExtractUintParam("competition_id", "competitionID"),
						scoreHandler.BulkCreate)
					scores.DELETE("/:id", middleware.ExtractUintParam("id", "participantID"), participantHandler.Delete)
				}
			}
		}
	}

	// Тайм-ауты защищают от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server exited properly")
}
