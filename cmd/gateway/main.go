package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rental-service/internal/api/http"
	"github.com/spec-kit/rental-service/internal/api/http/handlers"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/config"
	"github.com/spec-kit/rental-service/internal/gateway"
	"github.com/spec-kit/rental-service/internal/observability"
	"github.com/spec-kit/rental-service/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokens := auth.NewServiceTokenManager(cfg.Auth.ServiceSecret, cfg.Auth.ServiceTokenTTLMinutes)
	client := gateway.NewClient(cfg.Gateway, tokens, logger)
	handler := gateway.NewHandler(client, gateway.NewValidator())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.Gateway.ForwardTimeout())

	gateway.RegisterRoutes(app, gateway.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name+"-gateway", cfg.App.Version, map[string]handlers.Pinger{"redis": redis}),
		Handler:   handler,
		RateLimit: gateway.RateLimit(redis.Client, cfg.Gateway.RateLimitPerMin, logger),
	})

	go func() {
		if err := app.Listen(cfg.Gateway.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
