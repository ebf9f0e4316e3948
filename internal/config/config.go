package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Environment variable names.
const (
	DebugModeEnv = "DEBUG_MODE"

	DBHostEnv         = "DB_HOST"
	DBPortEnv         = "DB_PORT"
	DBUserEnv         = "DB_USER"
	DBPassEnv         = "DB_PASS"
	DBNameEnv         = "DB_NAME"
	DBQueryTimeoutEnv = "DB_QUERY_TIMEOUT"

	HTTPServerPortEnv    = "HTTP_SERVER_PORT"
	MetricsServerPortEnv = "METRICS_SERVER_PORT"
	ShutdownTimeoutEnv   = "SHUTDOWN_TIMEOUT"

	AWSRegionEnv   = "AWS_REGION"
	AWSEndpointEnv = "AWS_ENDPOINT"
	SQSQueueURLEnv = "SQS_QUEUE_URL"

	// EnvFilePath points at an optional .env file (local and test environments only).
	EnvFilePath        = "ENV_PATH"
	DefaultEnvFilePath = ".env"
)

const (
	// DefaultDBQueryTimeout bounds every catalog store call when DB_QUERY_TIMEOUT is unset.
	DefaultDBQueryTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")

	// ErrInvalidConfig is returned when a configuration value cannot be used.
	ErrInvalidConfig = errors.New("invalid config data")
)

// Config represents the catalog service configuration.
type Config struct {
	DebugMode       bool
	Database        DB
	HTTPServer      Server
	MetricsServer   Server
	AWS             AWSConfig
	ShutdownTimeout time.Duration
}

// AWSConfig holds the SQS notification settings. An empty queue URL disables notifications.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// DB represents database connection settings.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string

	QueryTimeout time.Duration
}

type Server struct {
	Port string
}

func (c *Config) validate() error {
	if err := allNonEmpty(map[string]string{
		DBHostEnv: c.Database.Host,
		DBUserEnv: c.Database.User,
		DBNameEnv: c.Database.Name,
	}); err != nil {
		return fmt.Errorf("database configuration incomplete: %w", err)
	}

	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("server port configuration incomplete: %w", err)
	}

	if err := allNumbers(map[string]string{
		DBPortEnv:            c.Database.Port,
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, DBQueryTimeoutEnv)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, ShutdownTimeoutEnv)
	}

	return nil
}

// RequireQueue fails when the SQS queue is not configured.
// The catalog service runs without a queue, the notification service cannot.
func (c *Config) RequireQueue() error {
	if err := allNonEmpty(map[string]string{
		SQSQueueURLEnv: c.AWS.SQSQueueURL,
		AWSRegionEnv:   c.AWS.Region,
	}); err != nil {
		return fmt.Errorf("AWS configuration incomplete: %w", err)
	}
	return nil
}

// LoadFromEnv reads the configuration from the environment, after applying the optional .env file.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	if err := ApplyEnvFile(envPath); err != nil {
		// variables may be provided by the runtime instead
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	queryTimeout, err := getEnvAsDuration(DBQueryTimeoutEnv, DefaultDBQueryTimeout)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvAsDuration(ShutdownTimeoutEnv, DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		Database: DB{
			Host:         os.Getenv(DBHostEnv),
			User:         os.Getenv(DBUserEnv),
			Password:     os.Getenv(DBPassEnv),
			Name:         os.Getenv(DBNameEnv),
			Port:         os.Getenv(DBPortEnv),
			QueryTimeout: queryTimeout,
		},
		HTTPServer:    Server{Port: os.Getenv(HTTPServerPortEnv)},
		MetricsServer: Server{Port: os.Getenv(MetricsServerPortEnv)},
		AWS: AWSConfig{
			Region:      os.Getenv(AWSRegionEnv),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
		ShutdownTimeout: shutdownTimeout,
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
