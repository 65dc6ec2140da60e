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

	"cvform/internal/api"
	"cvform/internal/config"
	"cvform/internal/metrics"
	"cvform/internal/scan"
	"cvform/internal/session"
)

func main() {
	// 本地开发时从 .env 读取环境变量，文件不存在时忽略。
	_ = godotenv.Load()
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := session.NewManager(cfg.Session.IdleTTL, session.WithLiveHook(metrics.SetLiveWorkspaces))
	go manager.Run(ctx, cfg.Session.SweepInterval, logger)

	scanner := scan.New(cfg.Clamd.Addr)
	if cfg.Clamd.Addr == "" {
		logger.Warn("clamd address not configured, image scanning disabled")
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, cfg, manager, scanner)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening",
		slog.String("address", address),
		slog.Duration("session_idle_ttl", cfg.Session.IdleTTL),
	)

	srv := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := serve(ctx, srv, shutdownTimeout, logger); err != nil {
		logger.Error("api server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("api server stopped")
}
