package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lacouro/loja-web/internal/admin"
	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/app"
	"github.com/lacouro/loja-web/internal/auth"
	"github.com/lacouro/loja-web/internal/home"
	"github.com/lacouro/loja-web/internal/pedidos"
	"github.com/lacouro/loja-web/internal/session"
	"github.com/lacouro/loja-web/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessions := session.NewManager(cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	store := session.NewStore(session.NewRedisStorage(redisClient, cfg.TokenKey, cfg.SessionTTL))

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	clients := api.NewClients(api.NewClient(cfg.APIBaseURL, cfg.APITimeout, store))
	orders := pedidos.NewController(clients.Pedidos, store, logger)

	authHandler := auth.NewHandler(logger, clients.Auth, store, templates)
	homeHandler := home.NewHandler(logger, clients.Produtos, orders, store, templates)
	adminHandler := admin.NewHandler(logger, clients, orders, templates)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		Sessions:     sessions,
		Store:        store,
		AuthHandler:  authHandler,
		HomeHandler:  homeHandler,
		AdminHandler: adminHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("backend", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}
