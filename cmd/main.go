package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mask_monitor/internal/handlers"
	"mask_monitor/internal/inference"
	"mask_monitor/internal/logger"
	"mask_monitor/internal/metrics"
	"mask_monitor/internal/repository"
	"mask_monitor/internal/repository/db"
	"mask_monitor/internal/server"
	"mask_monitor/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	v := viper.New()
	cfgErr := loadConfig(v, "configs")
	cfg := readAppConfig(v)

	log := logger.Get(cfg.LogLevel, cfg.LogFormat)
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	store, err := openStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to init storage", "err", err, "driver", cfg.StorageDriver)
	}
	if store != nil {
		defer func() {
			if cerr := store.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}()
	}

	model, err := inference.NewONNXModel(cfg.Model)
	if err != nil {
		log.Fatalw("failed to load model", "err", err, "path", cfg.Model.ModelPath)
	}
	defer func() {
		model.Close()
		if derr := inference.DestroyEnvironment(); derr != nil {
			log.Errorw("failed to destroy onnxruntime environment", "err", derr)
		}
	}()
	log.Infow("model_loaded", "model", model.Name(), "classes", model.Classes(), "sessions", model.Stats().Size)

	m := metrics.New()
	m.RegisterGaugeFunc("model_sessions_in_use", "Model sessions currently running inference", func() float64 {
		return float64(model.Stats().InUse)
	})
	m.RegisterCounterFunc("model_session_acquire_failures_total", "Inference requests that timed out waiting for a session", func() float64 {
		return float64(model.Stats().AcquireFailures)
	})

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, inference.NewAdapter(model, inference.WithMaxImagePixels(cfg.MaxImagePixels)), service.Options{
		RecentLimit:  cfg.RecentLimit,
		MuteDuration: cfg.MuteDuration,
		Observer:     m,
	}, log)
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithStaticDir(cfg.StaticDir),
		handlers.WithMaxUploadMB(cfg.MaxUploadMB),
	)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openStore returns nil for the memory driver.
func openStore(cfg appConfig, log *logger.Logger) (*sql.DB, error) {
	switch cfg.StorageDriver {
	case "", storageMemory:
		log.Infow("storage_memory")
		return nil, nil
	case storageSQLite:
		log.Infow("storage_sqlite", "path", cfg.SQLitePath)
		return db.InitDB(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server_starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
