package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/edustack/academy-api/config"
	"github.com/edustack/academy-api/internal/handler"
	"github.com/edustack/academy-api/internal/mailer"
	"github.com/edustack/academy-api/internal/middleware"
	"github.com/edustack/academy-api/internal/repository"
	"github.com/edustack/academy-api/internal/revocation"
	"github.com/edustack/academy-api/internal/router"
	"github.com/edustack/academy-api/internal/service"
	"github.com/edustack/academy-api/pkg/database"
	"github.com/edustack/academy-api/pkg/logger"
	redisclient "github.com/edustack/academy-api/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	// Database
	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 10,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Revocation registry: Redis-backed when configured so logout holds
	// across replicas, in-process memory otherwise
	var registry revocation.Registry
	var redisConn *redisclient.Client
	if config.Redis.Enabled {
		redisConn, err = redisclient.NewClient(redisclient.Config{
			Addr:         config.RedisAddress(),
			Password:     config.Redis.Password,
			DB:           config.Redis.Database,
			PoolSize:     config.Redis.PoolSize,
			MinIdleConns: config.Redis.MinIdleConns,
			DialTimeout:  config.Redis.DialTimeout,
			ReadTimeout:  config.Redis.ReadTimeout,
			WriteTimeout: config.Redis.WriteTimeout,
		})
		if err != nil {
			logger.GetLogger().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisConn.Close()
		registry = revocation.NewRedisRegistry(redisConn.Raw())
	} else {
		logger.GetLogger().Warn("Using in-memory revocation registry; logout state is per-instance and lost on restart")
		registry = revocation.NewMemoryRegistry()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)

	// Services
	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.Issuer, config.JWT.ExpirationTime)
	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		Username: config.SMTP.Username,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
	})
	authService := service.NewAuthService(userRepo, tokenService, registry, smtpMailer, service.AuthConfig{
		OTPTTL:          config.Auth.OTPTTL,
		ResetTokenTTL:   config.Auth.ResetTokenTTL,
		OperatorMailbox: config.Auth.OperatorMailbox,
		BaseURL:         config.App.BaseURL,
	})
	userService := service.NewUserService(userRepo)

	// Handlers and middleware
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisConn)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, registry)

	r := router.NewRouter(authHandler, userHandler, healthHandler, authMiddleware)

	srv := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      r.SetupRoutes(),
		ReadTimeout:  config.App.Timeout,
		WriteTimeout: config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("HTTP server listening",
			zap.String("port", config.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetLogger().Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}
}
