package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/alexmorbo/slack-notifier/application/usecase"
	"github.com/alexmorbo/slack-notifier/domain/recipient"
	"github.com/alexmorbo/slack-notifier/infrastructure/config"
	"github.com/alexmorbo/slack-notifier/infrastructure/slack"
	"github.com/alexmorbo/slack-notifier/infrastructure/valkey"
	httpInterface "github.com/alexmorbo/slack-notifier/interface/http"
	"github.com/alexmorbo/slack-notifier/interface/http/handler"
	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

func main() {
	log := logger.New("info")
	slog.SetDefault(log)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log = logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	log.Info("starting slack-notifier", "addr", cfg.Server.Addr())

	fileCfg, err := config.LoadFromFile(cfg.ConfigPath)
	if err != nil {
		log.Error("failed to load file config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyFileConfig(fileCfg); err != nil {
		log.Error("invalid file config", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		log.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("connected to valkey", "addr", cfg.Redis.Addr)

	routeRepo := valkey.NewRouteRepository(redisClient, log.With("component", "valkey"))
	allowlist := recipient.NewAllowlist(cfg.Slack.AllowedHosts)

	slackChannel := slack.NewChannel(
		slack.NewHTTPClient(cfg.Slack.HTTPTimeout),
		cfg.Slack.APIURL,
		log.With("component", "slack_channel"),
	)

	sendNotificationUC := usecase.NewSendNotificationUseCase(
		slackChannel,
		routeRepo,
		fileCfg,
		fileCfg,
		allowlist,
		log.With("component", "send_notification_usecase"),
	)

	manageRoutesUC := usecase.NewManageRoutesUseCase(routeRepo, allowlist, log.With("component", "manage_routes_usecase"))

	notifyHandler := handler.NewNotifyHandler(sendNotificationUC, log.With("component", "notify_handler"))
	routeHandler := handler.NewRouteHandler(manageRoutesUC)
	healthHandler := handler.NewHealthHandler(routeRepo)

	gin.SetMode(gin.ReleaseMode)
	router := httpInterface.NewRouter(log, notifyHandler, routeHandler, healthHandler)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("server started",
		"addr", cfg.Server.Addr(),
		"static_recipients", len(fileCfg.Recipients),
		"allowed_hosts", cfg.Slack.AllowedHosts,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
	case <-quit:
		log.Info("shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Error("failed to close redis client", "error", err)
	}

	log.Info("server stopped")
}
