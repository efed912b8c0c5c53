package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/victorexecutive/ops-service/internal/config"
	"github.com/victorexecutive/ops-service/internal/database"
	"github.com/victorexecutive/ops-service/internal/handler"
	"github.com/victorexecutive/ops-service/internal/handler/middleware"
	"github.com/victorexecutive/ops-service/internal/repository/postgres"
	"github.com/victorexecutive/ops-service/internal/service"
	"github.com/victorexecutive/ops-service/pkg/logger"
	"github.com/victorexecutive/ops-service/pkg/token"
	"github.com/victorexecutive/ops-service/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}
	zapLogger.Info("migrations applied")

	db, err := initDB(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Error("error closing database connection", zap.Error(err))
		}
	}()
	zapLogger.Info("database connection established")

	validate := validator.NewValidator()

	codec := token.NewCodec(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
	)

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewRefreshTokenRepository(db)
	flightRepo := postgres.NewFlightRepository(db)
	passRepo := postgres.NewQRPassRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, codec, zapLogger)
	userService := service.NewUserService(userRepo)
	flightService := service.NewFlightService(flightRepo)
	passService := service.NewQRPassService(passRepo, flightRepo)

	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userService)
	flightHandler := handler.NewFlightHandler(flightService, validate)
	qrHandler := handler.NewQRHandler(passService, validate)
	healthHandler := handler.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:      "Victor Ops Service",
		ErrorHandler: handler.NewErrorHandler(zapLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.Recovery(zapLogger))
	app.Use(middleware.RequestLogger(zapLogger))
	app.Use(middleware.CORS())

	handler.SetupRoutes(app, codec, authHandler, userHandler, flightHandler, qrHandler, healthHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		zapLogger.Info("server starting",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := app.Listen(addr); err != nil {
			zapLogger.Error("server failed to start", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}

// initDB opens the PostgreSQL connection with retry and pool settings.
func initDB(cfg *config.Config, zapLogger *zap.Logger) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		zapLogger.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zapLogger.Error("error closing database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
