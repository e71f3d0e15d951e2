// @title           AI Document Processing API
// @version         1.0.0
// @description     Mock document analysis service: real size statistics, fabricated entities/phrases/sentiment, records persisted per id.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/data/store"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
	"github.com/akolanti/DocProcessorAPI/internal/handlers"
	"github.com/akolanti/DocProcessorAPI/internal/server"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

func main() {

	//config - malformed numeric env values must stop the process here
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	logger_i.Init(cfg.LogLevel, cfg.Environment)
	var logger = logger_i.NewLogger("main")

	logger.Info("Starting " + config.ServiceName)
	logger.Info("Configuration", "ENVIRONMENT", cfg.Environment, "LOG_LEVEL", cfg.LogLevel)
	logger.Info("Model", "MODEL_NAME", cfg.ModelName)
	logger.Info("Secrets", "EMBEDDINGS_API_KEY configured", cfg.EmbeddingsKeyConfigured)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	documentStore := buildDocumentStore(serviceContext, cfg, logger)
	handler := handlers.NewDocumentHandler(cfg, documentStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(cfg.ListenAddr(), handler)

	<-stopExecution
	logger.Info("Server stopped")
}

// buildDocumentStore wires the configured backend. A Redis backend that is
// offline at startup degrades to the file store instead of failing the boot.
func buildDocumentStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) documentModel.DocumentStore {
	if cfg.StorageBackend == config.StorageBackendRedis {
		if redisDocStore := store.GetRedisDocumentStore(ctx, cfg.RedisAddr); redisDocStore != nil {
			logger.Info("Using Redis document store", "addr", cfg.RedisAddr)
			return redisDocStore
		}
		logger.Error("Redis store is offline, falling back to file storage")
	}

	fileStore := store.NewFileDocumentStore(cfg.StoragePath)
	if !fileStore.EnsureDirectory() {
		logger.Warn("Storage directory unavailable, documents will not be persisted", "path", cfg.StoragePath)
	}
	return fileStore
}
