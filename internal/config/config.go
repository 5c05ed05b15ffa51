package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
)

// Config holds application configuration
type Config struct {
	Port            string
	LogLevel        string
	DefaultTaxYear  string
	TaxConfig       string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultTaxYear:  getEnv("DEFAULT_TAX_YEAR", "2025-26"),
		TaxConfig:       getEnv("TAX_CONFIG", ""),
		MetricsEnabled:  input.Bool(getEnv("METRICS_ENABLED", "true")),
		ShutdownTimeout: time.Duration(input.Int(getEnv("SHUTDOWN_TIMEOUT_SECONDS", "10"))) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the port, log level and shutdown timeout
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT %q is not a valid port", c.Port)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if strings.TrimSpace(c.DefaultTaxYear) == "" {
		return fmt.Errorf("DEFAULT_TAX_YEAR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// NewLogger returns a JSON logrus logger at the configured level, falling
// back to info for an unparseable level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
