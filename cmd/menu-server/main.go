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
	"github.com/Henrywch0714/restaurant-ordering/internal/database"
	"github.com/Henrywch0714/restaurant-ordering/internal/generation"
	"github.com/Henrywch0714/restaurant-ordering/internal/handlers"
	"github.com/Henrywch0714/restaurant-ordering/internal/repository"
	"github.com/Henrywch0714/restaurant-ordering/internal/router"
	"github.com/Henrywch0714/restaurant-ordering/internal/service"
	"github.com/Henrywch0714/restaurant-ordering/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting menu server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store", cfg.Store,
		"log_level", cfg.LogLevel,
	)

	// Initialize repository
	var dishRepo repository.DishRepository
	connected := true

	switch cfg.Store {
	case config.StoreMemory:
		dishRepo = repository.NewSeededDishRepository()
		log.Info("using in-memory dish store")
	default:
		client, err := database.NewMongoClient(context.Background(), cfg.Mongo)
		if err != nil {
			// Keep serving; dish endpoints answer with the database error envelope
			log.Warn("mongodb unavailable, dish endpoints disabled", "error", err)
			dishRepo = repository.NewUnavailableDishRepository()
			connected = false
			break
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error("failed to disconnect mongodb", "error", err)
			}
		}()

		log.Info("connected to mongodb",
			"database", cfg.Mongo.Database,
			"collection", cfg.Mongo.Collection,
		)
		dishRepo = repository.NewMongoDishRepository(database.OpenCollection(client, cfg.Mongo), cfg.Mongo.OperationTimeout)
	}

	// Initialize services
	dishService := service.NewDishService(dishRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log).WithDatabase(connected)
	dishHandler := handlers.NewDishHandler(dishService, log)
	proxyHandler := handlers.NewProxyHandler(generation.NewClient(cfg.Generation), log)

	r := router.NewMenu(log, dishHandler, proxyHandler, healthHandler)

	if err := serve(log, cfg.Server, r); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// serve runs the server until SIGINT or SIGTERM, then shuts it down gracefully
func serve(log *slog.Logger, cfg config.ServerConfig, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
