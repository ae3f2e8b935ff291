package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/viewly/viewly/internal/api/handler"
	"github.com/viewly/viewly/internal/api/middleware"
	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/auth"
	"github.com/viewly/viewly/internal/config"
	"github.com/viewly/viewly/internal/infrastructure/cache"
	"github.com/viewly/viewly/internal/infrastructure/postgres"
	"github.com/viewly/viewly/internal/infrastructure/queue"
	"github.com/viewly/viewly/internal/infrastructure/storage"
	"github.com/viewly/viewly/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.MinIO.Endpoint,
		PublicEndpoint: cfg.MinIO.PublicEndpoint,
		AccessKey:      cfg.MinIO.AccessKey,
		SecretKey:      cfg.MinIO.SecretKey,
		Bucket:         cfg.MinIO.Bucket,
		UseSSL:         cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	// Repositories
	pool := pgClient.Pool()
	accountRepo := postgres.NewAccountRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	videoRepo := postgres.NewVideoRepository(pool)
	engagementRepo := postgres.NewEngagementRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	// Services
	gateway := assets.NewGateway(storageClient, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.Issuer)
	videoCache := cache.NewRedisVideoCache(redisClient)

	identitySvc := usecase.NewIdentityService(accountRepo, gateway, tokens, queueClient, logger)
	contentSvc := usecase.NewCachedContentService(
		usecase.NewContentService(videoRepo, commentRepo, gateway, logger),
		videoCache,
		usecase.DefaultCachedContentServiceConfig(),
	)
	engagementSvc := usecase.NewEngagementService(engagementRepo, videoRepo)
	subscriptionSvc := usecase.NewSubscriptionService(subscriptionRepo, accountRepo)
	commentSvc := usecase.NewCommentService(commentRepo, videoRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(identitySvc, cfg.Auth.SessionTTL)
	accountHandler := handler.NewAccountHandler(identitySvc, subscriptionSvc)
	videoHandler := handler.NewVideoHandler(contentSvc, engagementSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)

	r := setupRouter(logger, tokens, authHandler, accountHandler, videoHandler, commentHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      http.MaxBytesHandler(r, cfg.Server.MaxUploadBytes),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	tokens *auth.TokenManager,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Public reads
		r.Get("/videos", videoHandler.List)
		r.Get("/videos/{id}", videoHandler.Get)
		r.Get("/videos/{id}/engagement", videoHandler.Engagement)
		r.Get("/videos/{id}/comments", commentHandler.List)

		// Session-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(tokens))

			r.Get("/accounts/me", accountHandler.Profile)
			r.Patch("/accounts/me", accountHandler.UpdateProfile)
			r.Delete("/accounts/me", accountHandler.Delete)
			r.Get("/accounts/me/subscriptions", accountHandler.Subscriptions)
			r.Get("/accounts/me/videos", videoHandler.MyVideos)

			r.Post("/channels/{id}/subscription", accountHandler.Subscribe)
			r.Delete("/channels/{id}/subscription", accountHandler.Unsubscribe)

			r.Post("/videos", videoHandler.Upload)
			r.Patch("/videos/{id}", videoHandler.Update)
			r.Delete("/videos/{id}", videoHandler.Delete)
			r.Post("/videos/{id}/like", videoHandler.Like)
			r.Post("/videos/{id}/dislike", videoHandler.Dislike)
			r.Post("/videos/{id}/view", videoHandler.View)

			r.Post("/videos/{id}/comments", commentHandler.Create)
			r.Patch("/comments/{id}", commentHandler.Edit)
			r.Delete("/comments/{id}", commentHandler.Delete)
		})
	})

	return r
}
