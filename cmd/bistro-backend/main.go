package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bistrohq/bistro-backend/internal/blog"
	"github.com/bistrohq/bistro-backend/internal/config"
	"github.com/bistrohq/bistro-backend/internal/contact"
	httpserver "github.com/bistrohq/bistro-backend/internal/http"
	"github.com/bistrohq/bistro-backend/internal/notification"
	"github.com/bistrohq/bistro-backend/internal/repository"
	"github.com/bistrohq/bistro-backend/internal/retry"
	"github.com/bistrohq/bistro-backend/internal/subscription"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	if err := repository.RunMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	subscribersRepo := repository.NewSubscribersRepository(db)
	postsRepo := repository.NewPostsRepository(db)
	messagesRepo := repository.NewMessagesRepository(db)

	var mailer notification.Mailer
	if cfg.HasSMTP() {
		mailer, err = notification.NewSMTPMailer(notification.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			TLS:      cfg.SMTPTLS,
		})
		if err != nil {
			logger.Error("failed to create mail client", "error", err)
			os.Exit(1)
		}
		logger.Info("email dispatch enabled")
	} else {
		mailer = notification.NewLogMailer(logger)
		logger.Warn("smtp not configured, outbound email is suppressed")
	}
	dispatcher := notification.NewDispatcher(mailer, cfg.AppBaseURL, logger)

	retryPolicy := retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
	}

	subscriptionService := subscription.NewService(subscription.Config{
		TokenTTL:     cfg.TokenTTL,
		StoreTimeout: cfg.StoreTimeout,
		Retry:        retryPolicy,
	}, subscribersRepo, dispatcher, logger)

	blogService := blog.NewService(blog.Config{
		StoreTimeout: cfg.StoreTimeout,
		Retry:        retryPolicy,
	}, postsRepo)

	contactService := contact.NewService(contact.Config{
		StoreTimeout: cfg.StoreTimeout,
		Retry:        retryPolicy,
	}, messagesRepo)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:             logger,
		Subscriptions:      subscriptionService,
		Blog:               blogService,
		Contact:            contactService,
		RateLimitConfig:    cfg.RateLimit,
		SecurityHeaders:    cfg.SecurityHeaders,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
