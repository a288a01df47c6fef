// Package config loads the kernel's external configuration surface (§6):
// per-exchange credentials and connection settings, environment-variable
// driven with local .env convenience via godotenv, validated eagerly with
// accumulated errors in the teacher's LoadConfig style.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"connectorkit/internal/adapters/logger"
	"connectorkit/internal/credential"
)

// ExchangeConfig holds one venue's connection settings, loaded from
// {EXCHANGE}_* environment variables (§6). An empty or absent APIKey
// together with an empty or absent SECRET_KEY means read-only mode:
// authenticated operations fail with AuthError rather than this package
// refusing to load. Setting only one of the two is a validation error.
type ExchangeConfig struct {
	Exchange  string
	APIKey    string
	APISecret *credential.Secret
	BaseURL   string
	Testnet   bool

	Timeout              time.Duration
	MaxRetries           int
	ReconnectDelay       time.Duration
	MaxReconnectAttempts int
}

// Config is the kernel's process-wide configuration: one ExchangeConfig
// per configured venue plus ambient logging.
type Config struct {
	Exchanges map[string]ExchangeConfig
	LogLevel  logger.LogLevel
}

// LoadConfig loads configuration for the named exchanges from the
// environment (and a local .env file, if present — godotenv.Load failing
// to find one is not itself an error, matching the teacher's convention).
func LoadConfig(exchanges []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Exchanges: make(map[string]ExchangeConfig, len(exchanges))}
	var errs []string

	for _, name := range exchanges {
		ec, exchangeErrs := loadExchangeConfig(name)
		errs = append(errs, exchangeErrs...)
		cfg.Exchanges[name] = ec
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func loadExchangeConfig(name string) (ExchangeConfig, []string) {
	var errs []string
	prefix := strings.ToUpper(name) + "_"

	ec := ExchangeConfig{Exchange: name}
	ec.APIKey = getEnv(prefix+"API_KEY", "")
	secretStr := getEnv(prefix+"SECRET_KEY", "")
	if secretStr != "" {
		ec.APISecret = credential.NewSecret(secretStr)
	}
	// Absence of both is read-only mode (§6), not a validation error; an
	// API key with no secret (or vice versa) is almost certainly a
	// misconfiguration the operator should see immediately.
	if (ec.APIKey == "") != (secretStr == "") {
		errs = append(errs, fmt.Sprintf("%s: API_KEY and SECRET_KEY must both be set or both be empty", name))
	}

	ec.BaseURL = getEnv(prefix+"BASE_URL", "")
	ec.Testnet = getEnvAsBool(prefix+"TESTNET", false)
	if ec.BaseURL == "" && !ec.Testnet {
		errs = append(errs, fmt.Sprintf("%s: BASE_URL is required when TESTNET is false", name))
	}

	timeoutSeconds := getEnvAsInt(prefix+"TIMEOUT_SECONDS", 10)
	if timeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("%s: TIMEOUT_SECONDS must be positive", name))
	}
	ec.Timeout = time.Duration(timeoutSeconds) * time.Second

	ec.MaxRetries = getEnvAsInt(prefix+"MAX_RETRIES", 3)
	if ec.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("%s: MAX_RETRIES cannot be negative", name))
	}

	reconnectDelaySeconds := getEnvAsInt(prefix+"RECONNECT_DELAY_SECONDS", 1)
	if reconnectDelaySeconds <= 0 {
		errs = append(errs, fmt.Sprintf("%s: RECONNECT_DELAY_SECONDS must be positive", name))
	}
	ec.ReconnectDelay = time.Duration(reconnectDelaySeconds) * time.Second

	ec.MaxReconnectAttempts = getEnvAsInt(prefix+"MAX_RECONNECT_ATTEMPTS", 10)
	if ec.MaxReconnectAttempts < 0 {
		errs = append(errs, fmt.Sprintf("%s: MAX_RECONNECT_ATTEMPTS cannot be negative", name))
	}

	return ec, errs
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
