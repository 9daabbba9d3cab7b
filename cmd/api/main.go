package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"profitflow/internal/config"
	"profitflow/internal/database"
	"profitflow/internal/logger"
	"profitflow/internal/outbox"
	"profitflow/internal/realtime"
	"profitflow/internal/roi"
	"profitflow/internal/server"
	"profitflow/internal/validator"
)

// @title           profitflow API
// @version         1.0
// @description     profitflow runs the weekly profit distribution for investment plans and keeps each user's wallet ledger.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key for the external weekly cron trigger.

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	calc, err := newCalculator(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load allocation table: %w", err)
	}

	broker, err := newBroker(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to create event broker: %w", err)
	}
	defer broker.Close()

	db := dbManager.DB()

	if len(appConfig.KafkaBrokers) > 0 {
		publisher, err := outbox.NewKafkaPublisher(appConfig.KafkaBrokers, appConfig.KafkaTopic)
		if err != nil {
			return fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		defer publisher.Close()
		go outbox.NewRelay(db, publisher).Run(ctx, appConfig.OutboxPollInterval)
		log.Infof("Outbox relay publishing to %s", appConfig.KafkaTopic)
	}

	validator.Register()
	router := server.NewRouter(appConfig, server.NewServices(db, appConfig, calc, broker), broker)
	router.GET("/api/ready", func(c *gin.Context) {
		if err := dbManager.Ping(c.Request.Context()); err != nil {
			log.Warnw("readiness check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting profitflow server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCalculator(cfg *config.Config) (*roi.Calculator, error) {
	table := roi.DefaultTable()
	if cfg.AllocationsFile != "" {
		loaded, err := roi.LoadTable(cfg.AllocationsFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	return roi.NewCalculator(table, cfg.UnknownPlanPolicy == config.PlanPolicyStrict)
}

// newBroker uses Redis pub/sub when REDIS_URL is set so events reach clients
// connected to any replica; otherwise events stay in-process.
func newBroker(ctx context.Context, cfg *config.Config) (realtime.Broker, error) {
	if cfg.RedisURL == "" {
		logger.Get().Info("REDIS_URL not set, using in-process event broker")
		return realtime.NewMemoryBroker(), nil
	}
	client, err := realtime.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return realtime.NewRedisBroker(client), nil
}
