package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/cache"
	"github.com/BuzzLyutic/team-tracker/internal/config"
	"github.com/BuzzLyutic/team-tracker/internal/db"
	"github.com/BuzzLyutic/team-tracker/internal/handler"
	"github.com/BuzzLyutic/team-tracker/internal/mailer"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
	"github.com/BuzzLyutic/team-tracker/internal/service"
	"github.com/BuzzLyutic/team-tracker/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	for _, name := range config.Missing() {
		logger.Warn("Environment variable is not set", zap.String("name", name))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the Database", zap.Error(err))
	}
	defer clients.Close()
	logger.Info("Successfully connected to the Database!")

	viewCache := cache.New(nil, cfg.CacheTTL, logger)
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, project views are not cached", zap.Error(err))
		} else {
			defer rdb.Close()
			viewCache = cache.New(rdb, cfg.CacheTTL, logger)
		}
	}

	taskRepo := repo.NewTaskRepo(clients.Service)
	projectRepo := repo.NewProjectRepo(clients.Service, clients.Public)
	memberRepo := repo.NewTeamMemberRepo(clients.Service)
	notificationRepo := repo.NewNotificationRepo(clients.Service, clients.Public)

	notifications := service.NewNotificationService(notificationRepo, logger)
	h := handler.Handlers{
		Tasks:         handler.NewTaskHandler(service.NewTaskService(taskRepo, projectRepo, notifications), logger),
		Projects:      handler.NewProjectHandler(service.NewProjectService(projectRepo, viewCache), logger),
		TeamMembers:   handler.NewTeamMemberHandler(service.NewTeamMemberService(memberRepo, logger, cfg.ReorderConcurrency), logger),
		Notifications: handler.NewNotificationHandler(notifications, logger),
	}

	var pool *worker.Pool
	if cfg.SMTP.Enabled() {
		m := mailer.New(cfg.SMTP, logger, 30*time.Second)
		pool = worker.NewPool(repo.NewDeliveryRepo(clients.Service), m, logger, cfg.WorkerCount, time.Second)
		pool.Start(ctx)
	} else {
		logger.Warn("SMTP credentials not set, assignment emails are disabled")
	}

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(h, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	if pool != nil {
		pool.Stop()
	}
	logger.Info("Server stopped successfully!")
}
