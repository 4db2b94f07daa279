package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/auracount/auracount/internal/dependencies/clock"
	"github.com/auracount/auracount/internal/dependencies/random"
	"github.com/auracount/auracount/internal/services/score"
	"github.com/auracount/auracount/internal/services/session"
	"github.com/auracount/auracount/internal/storage"
	"github.com/auracount/auracount/internal/storage/local"
	"github.com/auracount/auracount/internal/storage/memory"
	"github.com/auracount/auracount/internal/storage/postgres"
	redisstorage "github.com/auracount/auracount/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	StorageTypeRedis    = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Remote storage.Store
	Local  *local.Store
	Health *storage.Health

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoreStore *score.Store
	Sessions   *session.Directory
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the remote backend ("memory", "postgres" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// PostgresConfig holds PostgreSQL settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DataDir is the directory for device-local state files
	DataDir string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create remote storage based on type
	var remote storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		remote = memory.New()
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgres.New(context.Background(), *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		remote = pgStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		remote = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'postgres' or 'redis'")
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	localStore, err := local.New(dataDir, logger)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(remote, localStore, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(remote storage.Store, localStore *local.Store, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	health := storage.NewHealth(remote, logger)

	scoreStore := score.New(remote, localStore, health, clk, logger)
	sessions := session.New(remote, localStore, health, clk, rnd, logger)

	return &App{
		Remote:     remote,
		Local:      localStore,
		Health:     health,
		Clock:      clk,
		Random:     rnd,
		ScoreStore: scoreStore,
		Sessions:   sessions,
	}
}
