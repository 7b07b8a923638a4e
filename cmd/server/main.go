package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rental-service/internal/api/http"
	"github.com/spec-kit/rental-service/internal/api/http/handlers"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/config"
	"github.com/spec-kit/rental-service/internal/events"
	"github.com/spec-kit/rental-service/internal/observability"
	"github.com/spec-kit/rental-service/internal/persistence"
	"github.com/spec-kit/rental-service/internal/repository"
	"github.com/spec-kit/rental-service/internal/repository/memory"
	"github.com/spec-kit/rental-service/internal/service"
	"github.com/spec-kit/rental-service/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepoSet(pg.PoolHandle(), logger)
	userRepo := repos.users
	itemRepo := repos.items
	bookingRepo := repos.bookings
	requestRepo := repos.requests
	commentRepo := repos.comments

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
		BookingRepo: bookingRepo,
		CommentRepo: commentRepo,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		ItemRepo:    itemRepo,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		BookingRepo: bookingRepo,
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.NewNotifier(notificationService, logger).Start()

	tokens := auth.NewServiceTokenManager(cfg.Auth.ServiceSecret, cfg.Auth.ServiceTokenTTLMinutes)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthDeps := map[string]handlers.Pinger{"redis": redis}
	if pg.PoolHandle() != nil {
		healthDeps["postgres"] = pg
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Users:        handlers.NewUsersHandler(userService),
		Items:        handlers.NewItemsHandler(itemService, commentService),
		Bookings:     handlers.NewBookingsHandler(bookingService),
		Requests:     handlers.NewRequestsHandler(requestService),
		GatewayTrust: auth.GatewayTrust(tokens, cfg.App.Env != "development"),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

type repoSet struct {
	users    repository.UserRepository
	items    repository.ItemRepository
	bookings repository.BookingRepository
	requests repository.RequestRepository
	comments repository.CommentRepository
}

// newRepoSet wires pgx repositories when a pool exists, otherwise falls
// back to the in-memory implementations so the server still runs.
func newRepoSet(pool *pgxpool.Pool, logger *zap.Logger) repoSet {
	if pool != nil {
		return repoSet{
			users:    repository.NewUserRepository(pool),
			items:    repository.NewItemRepository(pool),
			bookings: repository.NewBookingRepository(pool),
			requests: repository.NewRequestRepository(pool),
			comments: repository.NewCommentRepository(pool),
		}
	}

	logger.Warn("no postgres pool; using in-memory repositories, data is not persisted")
	store := memory.NewStore()
	return repoSet{
		users:    memory.NewUserRepository(store),
		items:    memory.NewItemRepository(store),
		bookings: memory.NewBookingRepository(store),
		requests: memory.NewRequestRepository(store),
		comments: memory.NewCommentRepository(store),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
