package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"artifex/internal/adapter/api"
	"artifex/internal/adapter/api/handler"
	apimiddleware "artifex/internal/adapter/api/middleware"
	"artifex/internal/adapter/api/router"
	"artifex/internal/adapter/repository"
	"artifex/internal/adapter/repository/memory"
	domainrepo "artifex/internal/domain/repository"
	"artifex/internal/infrastructure/auth"
	"artifex/internal/infrastructure/firebase"
	"artifex/internal/infrastructure/metrics"
	"artifex/internal/infrastructure/ratelimit"
	"artifex/internal/infrastructure/storage"
	"artifex/internal/usecase"
	"artifex/pkg/config"
	"artifex/pkg/logger"
)

const (
	shutdownTimeout      = 10 * time.Second
	limiterCleanupPeriod = 10 * time.Minute
)

type repositories struct {
	artworks  domainrepo.ArtworkRepository
	users     domainrepo.UserRepository
	carts     domainrepo.CartRepository
	orders    domainrepo.OrderRepository
	reviews   domainrepo.ReviewRepository
	wishlists domainrepo.WishlistRepository
	health    domainrepo.HealthChecker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, "artifex-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	var images usecase.ImageStorage
	if cfg.StorageBucket != "" {
		creds := firebaseCredentials(cfg)
		opts, err := creds.ClientOptions()
		if err != nil {
			logger.Fatal("Failed to resolve storage credentials: %v", err)
		}
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		images = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET is not set; artwork image uploads are disabled")
	}

	var (
		m               *metrics.Metrics
		metricsEndpoint http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		metricsEndpoint = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	g, gctx := errgroup.WithContext(ctx)

	var authLimiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		authLimiter = ratelimit.NewRedisLimiter(redisClient, cfg.AuthRateLimitPerMinute, time.Minute)
		logger.Info("Using Redis rate limiter")
	} else {
		memoryLimiter := ratelimit.NewMemoryLimiter(cfg.AuthRateLimitPerMinute)
		g.Go(func() error {
			memoryLimiter.Run(gctx, limiterCleanupPeriod)
			return nil
		})
		authLimiter = memoryLimiter
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	artworkUseCase := usecase.NewArtworkUseCase(repos.artworks, repos.users, images)
	authUseCase := usecase.NewAuthUseCase(repos.users, hasher, tokens)
	userUseCase := usecase.NewUserUseCase(repos.users, hasher)
	cartUseCase := usecase.NewCartUseCase(repos.carts, repos.artworks, repos.users)
	orderUseCase := usecase.NewOrderUseCase(repos.orders, repos.artworks, repos.users, m)
	reviewUseCase := usecase.NewReviewUseCase(repos.reviews, repos.artworks, repos.users, m)
	wishlistUseCase := usecase.NewWishlistUseCase(repos.wishlists, repos.artworks, repos.users)

	handlers := handler.Setup(
		artworkUseCase,
		authUseCase,
		userUseCase,
		cartUseCase,
		orderUseCase,
		reviewUseCase,
		wishlistUseCase,
		repos.health,
	)

	e := api.NewEcho(m)
	authMiddleware := apimiddleware.NewAuthMiddleware(tokens, repos.users)
	router.Setup(e, handlers, authMiddleware, authLimiter, metricsEndpoint)

	g.Go(func() error {
		logger.Info("Starting server on port %s (%s, store=%s)", cfg.ServerPort, cfg.Environment, cfg.StoreDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func firebaseCredentials(cfg *config.Config) firebase.Credentials {
	return firebase.Credentials{
		ProjectID:          cfg.FirebaseProject,
		ServiceAccountJSON: cfg.FirebaseServiceAccountJSON,
		ServiceAccountPath: cfg.FirebaseServiceAccountPath,
	}
}

// openStore builds the repositories for the configured driver. The returned
// func releases the store's resources.
func openStore(ctx context.Context, cfg *config.Config) (*repositories, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			artworks:  memory.NewArtworkRepository(store),
			users:     memory.NewUserRepository(store),
			carts:     memory.NewCartRepository(store),
			orders:    memory.NewOrderRepository(store),
			reviews:   memory.NewReviewRepository(store),
			wishlists: memory.NewWishlistRepository(store),
			health:    store,
		}, func() {}, nil
	}

	client, err := firebase.NewFirestoreClient(ctx, firebaseCredentials(cfg))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close Firestore client: %v", err)
		}
	}

	return &repositories{
		artworks:  repository.NewFirestoreArtworkRepository(client),
		users:     repository.NewFirestoreUserRepository(client),
		carts:     repository.NewFirestoreCartRepository(client),
		orders:    repository.NewFirestoreOrderRepository(client),
		reviews:   repository.NewFirestoreReviewRepository(client),
		wishlists: repository.NewFirestoreWishlistRepository(client),
		health:    repository.NewFirestoreHealthChecker(client),
	}, closeFn, nil
}
