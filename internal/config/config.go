package config

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/godilite/presentation-scoring/internal/scoring"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv string
	// DBPath holds the evaluation log. The log lasts one session: a file path
	// is cleared on startup and only keeps the last session for inspection
	// after exit.
	DBPath   string
	DBDriver string
	GRPCPort int
	// GRPCReflectionEnabled registers server reflection. The scoring service
	// is described by hand and carries no protobuf file descriptor, so
	// reflection lists it but cannot describe its methods. Call it with a JSON
	// content-subtype client instead.
	GRPCReflectionEnabled bool
	HTTPAddr              string
	RubricFile            string
	SeedSampleData        bool
	MissingScorePolicy    scoring.MissingScorePolicy
}

// LoadFromEnv loads configuration from environment variables. Malformed
// values fall back to their defaults.
func LoadFromEnv() *Config {
	port, err := strconv.Atoi(getEnv("GRPC_PORT", "50051"))
	if err != nil {
		port = 50051
	}

	policy, err := scoring.ParseMissingScorePolicy(getEnv("MISSING_SCORE_POLICY", "zero"))
	if err != nil {
		policy = scoring.MissingAsZero
	}

	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", ":memory:"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		GRPCPort:              port,
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		RubricFile:            os.Getenv("RUBRIC_FILE"),
		SeedSampleData:        getBool("SEED_SAMPLE_DATA", false),
		MissingScorePolicy:    policy,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
