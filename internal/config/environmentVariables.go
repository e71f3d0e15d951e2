package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TRACE_ID_KEY = "traceId"

	ServiceName    = "AI Document Processing API"
	ServiceVersion = "1.0.0"

	RATE_LIMIT_PER_SECOND       = 50
	BURST_RATE_LIMIT_PER_SECOND = 100

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//multipart uploads are parsed with this much memory before spilling to disk
	MaxMultipartMemory = 32 << 20 //32mb

	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"

	StorageDirPerm  = 0o755
	StorageFilePerm = 0o644

	RedisConnectionTimeout = 3 * time.Second
)

// Config is built once at startup from the environment and handed to whoever
// needs it. Immutable after Load; the embeddings key itself is never retained,
// only its presence.
type Config struct {
	Environment              string
	LogLevel                 string
	ModelName                string
	EmbeddingsKeyConfigured  bool
	MaxDocumentSizeMB        int
	ProcessingTimeoutSeconds int
	StoragePath              string
	StorageBackend           string
	RedisAddr                string
	Port                     int
}

// Load reads the environment once, applying defaults for absent variables.
// A malformed numeric value is a startup error, not a silent zero.
func Load() (Config, error) {
	maxSize, err := getEnvInt("MAX_DOCUMENT_SIZE_MB", 10)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvInt("PROCESSING_TIMEOUT_SECONDS", 15)
	if err != nil {
		return Config{}, err
	}
	port, err := getEnvInt("PORT", 8000)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Environment:              getEnv("ENVIRONMENT", "development"),
		LogLevel:                 getEnv("LOG_LEVEL", "INFO"),
		ModelName:                getEnv("MODEL_NAME", "not-configured"),
		EmbeddingsKeyConfigured:  strings.TrimSpace(os.Getenv("EMBEDDINGS_API_KEY")) != "",
		MaxDocumentSizeMB:        maxSize,
		ProcessingTimeoutSeconds: timeout,
		StoragePath:              getEnv("STORAGE_PATH", "/tmp/processed"),
		StorageBackend:           getEnv("STORAGE_BACKEND", StorageBackendFile),
		RedisAddr:                getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Port:                     port,
	}, nil
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return parsed, nil
}
