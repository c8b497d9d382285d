package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"writer-server/internal/config"
	"writer-server/internal/database"
	"writer-server/internal/handler"
	"writer-server/internal/llm"
	"writer-server/internal/logger"
	"writer-server/internal/middleware"
	"writer-server/internal/service"
	"writer-server/internal/utils"
	"writer-server/migrations"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zap.ReplaceGlobals(zapLogger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))
	zap.L().Info("Configuration loaded")

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	pgPool, err := database.NewPgxPool(ctx, dsn)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	// --- Migrations ---
	migrator := database.NewMigrator(migrations.FS, ".", pgPool)
	if err := migrator.Up(ctx); err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}
	zap.L().Info("Database migrations applied")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	// --- Crypto / Auth primitives ---
	secretBox, err := utils.NewSecretBox(cfg.AppEncryptionKey)
	if err != nil {
		zap.L().Fatal("Failed to initialize encryption", zap.Error(err))
	}
	jwtVerifier, err := middleware.NewJWTVerifier(cfg.JWTSecret)
	if err != nil {
		zap.L().Fatal("Failed to initialize JWT verifier", zap.Error(err))
	}

	// --- Dependency Injection ---
	userRepo := database.NewPgUserRepository(pgPool)
	profileRepo := database.NewPgProfileRepository(pgPool)
	promptRepo := database.NewPgPromptRepository(pgPool)
	projectRepo := database.NewPgProjectRepository(pgPool)
	characterRepo := database.NewPgCharacterRepository(pgPool)
	scriptRepo := database.NewPgScriptRepository(pgPool)
	executionRepo := database.NewPgExecutionRepository(pgPool)

	userSvc := service.NewUserService(userRepo, secretBox, zapLogger)
	profileSvc := service.NewProfileService(profileRepo, zapLogger)
	promptSvc := service.NewPromptService(promptRepo, zapLogger)
	librarySvc := service.NewLibraryService(projectRepo, characterRepo, scriptRepo, zapLogger)

	assembler := service.NewContextAssembler(projectRepo, characterRepo, scriptRepo, zapLogger)
	composer := service.NewPromptComposer(promptRepo, zapLogger)
	dispatcher := llm.NewDispatcher(zapLogger)
	pricingSvc := llm.NewPricingService(zapLogger)
	generationSvc := service.NewGenerationService(
		userRepo, profileRepo, scriptRepo, executionRepo,
		assembler, composer, dispatcher, secretBox, zapLogger,
	)

	userHandler := handler.NewUserHandler(userSvc, zapLogger)
	profileHandler := handler.NewProfileHandler(profileSvc, zapLogger)
	promptHandler := handler.NewPromptHandler(promptSvc, zapLogger)
	libraryHandler := handler.NewLibraryHandler(librarySvc, zapLogger)
	generationHandler := handler.NewGenerationHandler(generationSvc, executionRepo, pricingSvc, secretBox, zapLogger)

	// --- Rate Limiter (на генерацию, по пользователю) ---
	rateLimitStore := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       cfg.GenerateRateLimit,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			// Запросы после AuthMiddleware лимитируем по пользователю,
			// до аутентификации - по IP.
			if userID, ok := middleware.CurrentUserID(c); ok {
				return "gen:" + userID.String()
			}
			return "gen:ip:" + c.ClientIP()
		},
	})
	zap.L().Info("Rate limiter middleware initialized", zap.Uint("limitPerMinute", cfg.GenerateRateLimit))

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLoggingMiddleware(zapLogger))
	router.Use(gin.Recovery())

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	if origins := splitOrigins(cfg.CORSAllowedOrigins); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtVerifier, userSvc, zapLogger))
	{
		userHandler.RegisterRoutes(api.Group("/users"))
		profileHandler.RegisterRoutes(api.Group("/profiles"))
		promptHandler.RegisterRoutes(api.Group("/prompts"))
		libraryHandler.RegisterRoutes(api)

		ai := api.Group("/ai")
		ai.Use(rateLimitMiddleware)
		generationHandler.RegisterRoutes(ai)
	}

	// Prometheus middleware регистрируется после роутов
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // генерация может идти долго
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
