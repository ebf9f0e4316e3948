package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ApplyEnvFile loads environment variables from the given .env files without overriding set ones.
func ApplyEnvFile(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		if _, err := strconv.Atoi(value); err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.Any("err", err))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		slog.Error("configuration validation failed", slog.String("key", name), slog.String("value", raw), slog.Any("err", err))
		return 0, fmt.Errorf("%w: invalid duration for key %s: %v", ErrInvalidConfig, name, err)
	}
	return val, nil
}
