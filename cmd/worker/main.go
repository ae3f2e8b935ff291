package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/config"
	"github.com/viewly/viewly/internal/domain/repository"
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

	// Repositories and purge orchestrator
	pool := pgClient.Pool()
	gateway := assets.NewGateway(storageClient, logger)
	purgeSvc := usecase.NewPurgeService(
		postgres.NewAccountRepository(pool),
		postgres.NewSubscriptionRepository(pool),
		postgres.NewVideoRepository(pool),
		postgres.NewEngagementRepository(pool),
		postgres.NewCommentRepository(pool),
		gateway,
		logger,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight tasks
	var wg sync.WaitGroup

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming purge tasks")
		err := queueClient.ConsumePurgeTasks(ctx, func(task repository.PurgeTask) error {
			wg.Add(1)
			defer wg.Done()

			if task.RetryCount >= cfg.Worker.MaxRetries {
				logger.Error("dropping purge task after max retries",
					slog.String("account_id", task.AccountID.String()),
					slog.Int("retry_count", task.RetryCount),
				)
				return nil
			}

			logger.Info("processing purge task",
				slog.String("account_id", task.AccountID.String()),
				slog.Int("retry_count", task.RetryCount),
			)

			if err := purgeSvc.Purge(ctx, task.AccountID); err != nil {
				logger.Error("purge failed",
					slog.String("account_id", task.AccountID.String()),
					slog.Int("retry_count", task.RetryCount),
					slog.String("error", err.Error()),
				)
				return err
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Stop consuming new messages
	cancel()

	// Wait for in-flight tasks to complete (or timeout)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
