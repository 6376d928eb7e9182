package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverBadger = "badger"
	DriverNeo4j  = "neo4j"
)

type Config struct {
	Env     string
	Storage StorageConfig
	History HistoryConfig
	Logging LoggingConfig
}

type StorageConfig struct {
	Driver string
	Badger BadgerConfig
	Neo4j  Neo4jConfig
}

type BadgerConfig struct {
	Path     string
	InMemory bool
}

type Neo4jConfig struct {
	URI      string
	Username string
	Password string
}

type HistoryConfig struct {
	MaxDepth int
}

type LoggingConfig struct {
	Level string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxDepth, err := getEnvAsInt("HISTORY_MAX_DEPTH", 100)
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("invalid HISTORY_MAX_DEPTH: %d is negative", maxDepth)
	}

	inMemory, err := getEnvAsBool("BADGER_IN_MEMORY", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", DriverBadger),
			Badger: BadgerConfig{
				Path:     getEnv("BADGER_PATH", defaultBadgerPath()),
				InMemory: inMemory,
			},
			Neo4j: Neo4jConfig{
				URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
				Username: getEnv("NEO4J_USER", "neo4j"),
				Password: getEnv("NEO4J_PASSWORD", "password"),
			},
		},
		History: HistoryConfig{
			MaxDepth: maxDepth,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Storage.Driver {
	case DriverBadger, DriverNeo4j:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: want %s or %s", cfg.Storage.Driver, DriverBadger, DriverNeo4j)
	}
	return cfg, nil
}

func defaultBadgerPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".brain-dump"
	}
	return dir + string(os.PathSeparator) + "brain-dump"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
