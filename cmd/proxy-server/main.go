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

	"github.com/Henrywch0714/restaurant-ordering/internal/config"
	"github.com/Henrywch0714/restaurant-ordering/internal/generation"
	"github.com/Henrywch0714/restaurant-ordering/internal/handlers"
	"github.com/Henrywch0714/restaurant-ordering/internal/router"
	"github.com/Henrywch0714/restaurant-ordering/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting generation proxy",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"endpoint", cfg.Generation.Endpoint,
	)

	healthHandler := handlers.NewHealthHandler(log)
	proxyHandler := handlers.NewProxyHandler(generation.NewClient(cfg.Generation), log)

	r := router.NewProxy(log, proxyHandler, healthHandler)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr, "proxy_path", "/api/qwen")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
